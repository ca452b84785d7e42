package models

import "encoding/json"

// Campaign is a fundraising project. The server reads email (owner),
// deadline (ISO-8601 string) and fundBalance; the rest is opaque.
type Campaign Document

func (c Campaign) Owner() string {
	return Document(c).String("email")
}

func (c Campaign) Deadline() string {
	return Document(c).String("deadline")
}

// FundIncrement is the body of PATCH /fundBalance/{id}. FundBalance holds
// the delta to add, not the new total.
type FundIncrement struct {
	FundBalance json.Number `json:"fundBalance" validate:"required"`
}
