// Package classifier turns raw ticket text into structured classification
// fields via a remote text-generation call.
package classifier

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticket-classifier/internal/domain"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// ProcessedTicket is the validated structured output of ticket analysis.
type ProcessedTicket struct {
	Summary        string          `json:"summary"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
}

// Validate checks the model output against the schema: non-empty summary,
// enum membership for category and priority, sentiment within [0.0, 1.0].
func (p ProcessedTicket) Validate() error {
	if p.Summary == "" {
		return fmt.Errorf("summary is empty")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("category %q not in enumeration", p.Category)
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("priority %q not in enumeration", p.Priority)
	}
	if p.SentimentScore < 0.0 || p.SentimentScore > 1.0 {
		return fmt.Errorf("sentiment_score %v outside [0.0, 1.0]", p.SentimentScore)
	}
	return nil
}

// Classifier analyzes raw ticket content. Implementations must return a
// validated result or a classification error; there is no local fallback.
type Classifier interface {
	Classify(ctx context.Context, content string) (ProcessedTicket, error)
}

// invalidResponse wraps a schema violation in the service error taxonomy.
func invalidResponse(err error) error {
	return apperrors.NewClassificationError("model response failed validation", err)
}
