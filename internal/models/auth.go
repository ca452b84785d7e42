package models

// Login is the body of POST /login.
type Login struct {
	Email string `json:"email" validate:"required,email"`
}

type SessionResponse struct {
	Success bool `json:"success"`
}
