package domain

import (
	"fmt"
	"time"
)

// Category classifies the subject matter of a ticket. Values match the
// category_enum type in the database.
type Category string

const (
	CategoryBilling        Category = "billing"
	CategoryTechnical      Category = "technical"
	CategoryFeatureRequest Category = "feature_request"
	CategoryGeneral        Category = "general"
)

// Priority enumerates ticket urgency. Values match the priority_enum type.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryBilling, CategoryTechnical, CategoryFeatureRequest, CategoryGeneral:
		return Category(raw), nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// ParsePriority validates a raw priority value.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(raw), nil
	}
	return "", fmt.Errorf("unknown priority %q", raw)
}

// Valid reports enum membership.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// Valid reports enum membership.
func (p Priority) Valid() bool {
	_, err := ParsePriority(string(p))
	return err == nil
}

// Ticket is a classified support submission.
type Ticket struct {
	ID             int64
	CustomerID     int64
	RawContent     string
	Summary        string
	Category       Category
	Priority       Priority
	SentimentScore float64
	CreatedAt      time.Time
}
