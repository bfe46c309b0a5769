package dto

import "time"

// CustomerResponse is the stored customer representation.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
