package entities

// Category is a named grouping of businesses, seeded at initialization
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
