package view

import (
	"context"
	"encoding/json"

	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

type UserAPI interface {
	UserList(ctx context.Context) ([]contract.User, error)
}

type UserListView struct {
	list *ListView[[]contract.User]
}

func LoadUserListView(ctx context.Context, api UserAPI, observer Observer[[]contract.User]) *UserListView {
	users, err := api.UserList(ctx)
	if users == nil {
		users = []contract.User{}
	}
	return &UserListView{list: newListViewWithError(users, err, api.UserList, observer)}
}

func (v *UserListView) State() State[[]contract.User] {
	return v.list.State()
}

func (v *UserListView) Refetch(ctx context.Context) error {
	return v.list.Refetch(ctx)
}

// RawJSON is the fetched collection encoded as compact JSON.
func (v *UserListView) RawJSON() string {
	b, err := json.Marshal(v.State().Data)
	if err != nil {
		return "[]"
	}
	return string(b)
}
