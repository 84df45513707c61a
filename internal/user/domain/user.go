package domain

// User is the public projection of a stored user. Identifiers and other
// store-internal columns are never loaded.
type User struct {
	FirstName string
	LastName  string
	Email     string
}
