package models

// BusinessQuery carries the optional listing filters of GET /api/businesses
type BusinessQuery struct {
	CategoryID *int64
	Search     string
}
