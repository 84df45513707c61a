package service

import (
	"context"

	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	"github.com/AlibekovAA/todo-rpc/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-rpc/internal/user/repository"
)

type UserService struct {
	repo userrepo.UserRepository
	log  *logger.Logger
}

func NewUserService(repo userrepo.UserRepository, log *logger.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

func (s *UserService) List(ctx context.Context) ([]contract.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]contract.User, 0, len(users))
	for _, u := range users {
		out = append(out, userToWire(u))
	}
	if s.log.ShouldLog(logger.DEBUG) {
		s.log.WithFields(ctx, logger.Fields{"count": len(out)}).Debug("users listed")
	}
	return out, nil
}

func userToWire(u domain.User) contract.User {
	return contract.User{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
