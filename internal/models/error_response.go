package models

// ErrorResponse is the JSON body of failed API calls
type ErrorResponse struct {
	Error string `json:"error"`
}
