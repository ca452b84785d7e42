package models

// User is a registered account. Only email is interpreted; any other profile
// fields are kept as sent.
type User Document

func (u User) Email() string {
	return Document(u).String("email")
}

type UserInput struct {
	Email string `json:"email" validate:"required,email"`
}
