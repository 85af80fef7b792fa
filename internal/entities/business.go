package entities

// Business represents a listed business. Optional columns are nullable in the database.
type Business struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	CategoryID  *int64  `db:"category_id" json:"category_id"`
	Description *string `db:"description" json:"description"`
	Address     *string `db:"address" json:"address"`
	Phone       *string `db:"phone" json:"phone"`
	Email       *string `db:"email" json:"email"`
	Website     *string `db:"website" json:"website"`
	ImageURL    *string `db:"image_url" json:"image_url"`
}

// BusinessView is a Business joined with its category's name
type BusinessView struct {
	Business
	CategoryName string `db:"category_name" json:"category_name"`
}
