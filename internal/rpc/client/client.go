package client

import (
	"context"

	"github.com/AlibekovAA/todo-rpc/internal/rpc"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

// Client is the typed API of the todo service. It works over any rpc.Caller.
type Client struct {
	caller rpc.Caller
}

func New(caller rpc.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) TodoList(ctx context.Context) ([]contract.Todo, error) {
	return rpc.Invoke(ctx, c.caller, contract.TodoList, contract.NoInput{})
}

func (c *Client) TodoDeleteByID(ctx context.Context, id string) (contract.TodoDeleteByIDOutput, error) {
	return rpc.Invoke(ctx, c.caller, contract.TodoDeleteByID, contract.TodoDeleteByIDInput{ID: &id})
}

func (c *Client) UserList(ctx context.Context) ([]contract.User, error) {
	return rpc.Invoke(ctx, c.caller, contract.UserList, contract.NoInput{})
}
