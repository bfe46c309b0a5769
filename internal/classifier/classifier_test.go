package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-classifier/internal/domain"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

func validTicket() ProcessedTicket {
	return ProcessedTicket{
		Summary:        "Customer was charged twice and wants a refund.",
		Category:       domain.CategoryBilling,
		Priority:       domain.PriorityCritical,
		SentimentScore: 0.05,
	}
}

func TestProcessedTicketValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProcessedTicket)
		wantErr string
	}{
		{
			name:   "valid ticket passes",
			mutate: func(p *ProcessedTicket) {},
		},
		{
			name:   "boundary sentiment zero",
			mutate: func(p *ProcessedTicket) { p.SentimentScore = 0.0 },
		},
		{
			name:   "boundary sentiment one",
			mutate: func(p *ProcessedTicket) { p.SentimentScore = 1.0 },
		},
		{
			name:    "empty summary rejected",
			mutate:  func(p *ProcessedTicket) { p.Summary = "" },
			wantErr: "summary",
		},
		{
			name:    "unknown category rejected",
			mutate:  func(p *ProcessedTicket) { p.Category = "refunds" },
			wantErr: "category",
		},
		{
			name:    "unknown priority rejected",
			mutate:  func(p *ProcessedTicket) { p.Priority = "urgent" },
			wantErr: "priority",
		},
		{
			name:    "sentiment below range rejected",
			mutate:  func(p *ProcessedTicket) { p.SentimentScore = -0.01 },
			wantErr: "sentiment_score",
		},
		{
			name:    "sentiment above range rejected",
			mutate:  func(p *ProcessedTicket) { p.SentimentScore = 1.01 },
			wantErr: "sentiment_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := validTicket()
			tt.mutate(&ticket)
			err := ticket.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	const body = `{"summary":"Login fails after reset.","category":"technical","priority":"high","sentiment_score":0.2}`

	t.Run("plain json", func(t *testing.T) {
		result, err := decodeResponse(body)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryTechnical, result.Category)
		assert.Equal(t, domain.PriorityHigh, result.Priority)
		assert.InDelta(t, 0.2, result.SentimentScore, 1e-9)
	})

	t.Run("fenced json", func(t *testing.T) {
		result, err := decodeResponse("```json\n" + body + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Login fails after reset.", result.Summary)
	})

	t.Run("malformed json is a classification error", func(t *testing.T) {
		_, err := decodeResponse("I think this is a billing issue.")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeClassification))
	})

	t.Run("schema violation is a classification error", func(t *testing.T) {
		_, err := decodeResponse(`{"summary":"x","category":"spam","priority":"high","sentiment_score":0.5}`)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeClassification))
	})
}
