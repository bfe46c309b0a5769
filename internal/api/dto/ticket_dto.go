package dto

import (
	"time"

	"github.com/spec-kit/ticket-classifier/internal/domain"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	Content string `json:"content"`
}

// TicketResponse is the processed ticket representation.
type TicketResponse struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customer_id"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	Summary        string          `json:"summary"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}
