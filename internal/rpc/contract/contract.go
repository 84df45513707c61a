// Package contract declares every remote procedure together with its input
// and output wire types. Server handlers and clients are both typed against
// these descriptors, so a change here breaks whichever side falls out of step.
package contract

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

func (k Kind) Valid() bool {
	return k == KindQuery || k == KindMutation
}

// Procedure describes one remote procedure. I and O are carried only in the
// type so that bindings and calls can be checked at compile time.
type Procedure[I, O any] struct {
	namespace string
	name      string
	kind      Kind
}

func NewQuery[I, O any](namespace, name string) Procedure[I, O] {
	return Procedure[I, O]{namespace: namespace, name: name, kind: KindQuery}
}

func NewMutation[I, O any](namespace, name string) Procedure[I, O] {
	return Procedure[I, O]{namespace: namespace, name: name, kind: KindMutation}
}

func (p Procedure[I, O]) Namespace() string { return p.namespace }
func (p Procedure[I, O]) Name() string      { return p.name }
func (p Procedure[I, O]) Kind() Kind        { return p.kind }

// Path is the dotted address of the procedure, e.g. "todo.list".
func (p Procedure[I, O]) Path() string {
	return p.namespace + "." + p.name
}

func (p Procedure[I, O]) Descriptor() Descriptor {
	return Descriptor{Path: p.Path(), Kind: p.kind}
}

// Descriptor is the untyped identity of a procedure.
type Descriptor struct {
	Path string
	Kind Kind
}
