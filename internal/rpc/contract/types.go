package contract

// NoInput is the input of procedures that take no arguments. Any value sent
// by the caller is ignored.
type NoInput struct{}

type Todo struct {
	ID        string  `json:"id"`
	Text      *string `json:"text"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TodoDeleteByIDInput requires an id. Any string, including "", is accepted;
// a missing or null id is not.
type TodoDeleteByIDInput struct {
	ID *string `json:"id" validate:"required"`
}

// TodoDeleteByIDOutput acknowledges a delete. Todo is nil when no row
// matched, which is not an error.
type TodoDeleteByIDOutput struct {
	RowsAffected int64 `json:"rowsAffected"`
	Todo         *Todo `json:"todo"`
}
