package domain

import "time"

// Customer is a de-duplicated identity keyed by unique email. A repeated
// email always resolves to the same row with name updated to the latest
// observed value.
type Customer struct {
	ID        int64
	Email     string
	Name      string
	CreatedAt time.Time
}
