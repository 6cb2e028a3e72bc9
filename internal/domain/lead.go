package domain

import "time"

// Lead is a contact request left through the public form.
type Lead struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   *string
	Message   *string
	CreatedAt time.Time
}
