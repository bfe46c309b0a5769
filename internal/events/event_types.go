package events

import (
	"time"

	"github.com/spec-kit/ticket-classifier/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketProcessed      EventType = "ticket_processed"
	EventClassificationFailed EventType = "classification_failed"
)

// Event represents a domain event emitted by the intake workflow.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketProcessedPayload describes a fully persisted ticket.
type TicketProcessedPayload struct {
	TicketID       int64           `json:"ticket_id"`
	CustomerID     int64           `json:"customer_id"`
	CustomerEmail  string          `json:"customer_email"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
}

// ClassificationFailedPayload describes a rejected model response or call.
type ClassificationFailedPayload struct {
	CustomerEmail string `json:"customer_email"`
	Reason        string `json:"reason"`
}
