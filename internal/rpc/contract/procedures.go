package contract

const (
	NamespaceTodo = "todo"
	NamespaceUser = "user"
)

var (
	TodoList       = NewQuery[NoInput, []Todo](NamespaceTodo, "list")
	TodoDeleteByID = NewMutation[TodoDeleteByIDInput, TodoDeleteByIDOutput](NamespaceTodo, "deleteById")
	UserList       = NewQuery[NoInput, []User](NamespaceUser, "list")
)

// All lists every procedure the service exposes.
func All() []Descriptor {
	return []Descriptor{
		TodoList.Descriptor(),
		TodoDeleteByID.Descriptor(),
		UserList.Descriptor(),
	}
}
