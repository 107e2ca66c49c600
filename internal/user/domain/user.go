package domain

type ID string

// User owns an ordered list of recipe ids.
type User struct {
	ID      ID
	Name    string
	Recipes []int32
}
