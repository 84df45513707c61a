package rpc

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
)

var (
	ErrValidation = commonerrors.NewDomainError(
		"BAD_REQUEST",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid procedure input",
	)

	ErrProcedureNotFound = commonerrors.NewDomainError(
		"NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"procedure not found",
	)

	ErrMethodNotSupported = commonerrors.NewDomainError(
		"METHOD_NOT_SUPPORTED",
		commonerrors.CategoryMethod,
		http.StatusMethodNotAllowed,
		"procedure does not accept this kind of call",
	)
)
