package models

// Donation links a donor email to a contribution. Stored as sent.
type Donation Document

func (d Donation) Donor() string {
	return Document(d).String("email")
}
