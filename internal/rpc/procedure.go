package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

// Handler implements a single procedure.
type Handler[I, O any] func(ctx context.Context, input I) (O, error)

type procedure struct {
	desc   contract.Descriptor
	invoke func(ctx context.Context, raw json.RawMessage) (any, error)
}

// Namespace groups the procedures of one domain, e.g. "todo".
type Namespace struct {
	name  string
	procs map[string]*procedure
}

func NewNamespace(name string) *Namespace {
	return &Namespace{
		name:  name,
		procs: make(map[string]*procedure),
	}
}

func (ns *Namespace) Name() string {
	return ns.name
}

// HandleQuery binds h to a query descriptor. Binding panics on a descriptor
// from another namespace, a mutation descriptor, or a duplicate name.
func HandleQuery[I, O any](ns *Namespace, p contract.Procedure[I, O], h Handler[I, O]) {
	if p.Kind() != contract.KindQuery {
		panic(fmt.Sprintf("rpc: %s is a %s, not a query", p.Path(), p.Kind()))
	}
	bind(ns, p, h)
}

// HandleMutation binds h to a mutation descriptor.
func HandleMutation[I, O any](ns *Namespace, p contract.Procedure[I, O], h Handler[I, O]) {
	if p.Kind() != contract.KindMutation {
		panic(fmt.Sprintf("rpc: %s is a %s, not a mutation", p.Path(), p.Kind()))
	}
	bind(ns, p, h)
}

func bind[I, O any](ns *Namespace, p contract.Procedure[I, O], h Handler[I, O]) {
	if h == nil {
		panic(fmt.Sprintf("rpc: nil handler for %s", p.Path()))
	}
	if p.Namespace() != ns.name {
		panic(fmt.Sprintf("rpc: %s cannot be bound in namespace %q", p.Path(), ns.name))
	}
	if _, dup := ns.procs[p.Name()]; dup {
		panic(fmt.Sprintf("rpc: duplicate procedure %s", p.Path()))
	}

	_, ignoreInput := any(*new(I)).(contract.NoInput)

	ns.procs[p.Name()] = &procedure{
		desc: p.Descriptor(),
		invoke: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var input I
			if !ignoreInput {
				decoded, err := decodeInput[I](raw)
				if err != nil {
					return nil, err
				}
				input = decoded
			}
			return h(ctx, input)
		},
	}
}
