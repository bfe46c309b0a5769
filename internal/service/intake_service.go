package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-classifier/internal/classifier"
	"github.com/spec-kit/ticket-classifier/internal/events"
	"github.com/spec-kit/ticket-classifier/internal/extract"
	"github.com/spec-kit/ticket-classifier/internal/observability"
	"github.com/spec-kit/ticket-classifier/internal/repository"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// IntakeResult is the outcome of one processed ticket.
type IntakeResult struct {
	TicketID   int64
	CustomerID int64
	Customer   extract.CustomerInfo
	Processed  classifier.ProcessedTicket
}

// IntakeService runs the classify-and-persist workflow.
type IntakeService struct {
	classifier      classifier.Classifier
	repo            repository.IntakeRepository
	dispatcher      events.Dispatcher
	metrics         *observability.Metrics
	logger          *zap.Logger
	classifyTimeout time.Duration
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	Classifier      classifier.Classifier
	Repo            repository.IntakeRepository
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
	Logger          *zap.Logger
	ClassifyTimeout time.Duration
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	timeout := deps.ClassifyTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &IntakeService{
		classifier:      deps.Classifier,
		repo:            deps.Repo,
		dispatcher:      deps.Dispatcher,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
		classifyTimeout: timeout,
	}
}

// ProcessTicket runs extract, classify, persist for one raw ticket. Any
// failing step aborts the call; nothing reaches the store unless the model
// response validated.
func (s *IntakeService) ProcessTicket(ctx context.Context, rawContent string) (*IntakeResult, error) {
	if rawContent == "" {
		return nil, apperrors.NewValidationError("ticket content is empty", nil)
	}

	info := extract.ExtractCustomerInfo(rawContent)
	s.logger.Info("customer info extracted",
		zap.String("email", info.Email),
		zap.String("name", info.Name))

	classifyCtx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	processed, err := s.classifier.Classify(classifyCtx, rawContent)
	if err != nil {
		s.publishEvent(ctx, events.Event{
			Type: events.EventClassificationFailed,
			Payload: events.ClassificationFailedPayload{
				CustomerEmail: info.Email,
				Reason:        err.Error(),
			},
		})
		return nil, err
	}
	s.metrics.RecordClassification()

	saved, err := s.repo.SaveProcessedTicket(ctx, repository.SaveTicketInput{
		CustomerEmail:  info.Email,
		CustomerName:   info.Name,
		RawContent:     rawContent,
		Summary:        processed.Summary,
		Category:       processed.Category,
		Priority:       processed.Priority,
		SentimentScore: processed.SentimentScore,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTicketProcessed()

	s.logger.Info("ticket persisted",
		zap.Int64("ticket_id", saved.TicketID),
		zap.Int64("customer_id", saved.CustomerID),
		zap.String("category", string(processed.Category)),
		zap.String("priority", string(processed.Priority)),
		zap.Float64("sentiment_score", processed.SentimentScore))

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketProcessed,
		Payload: events.TicketProcessedPayload{
			TicketID:       saved.TicketID,
			CustomerID:     saved.CustomerID,
			CustomerEmail:  info.Email,
			Category:       processed.Category,
			Priority:       processed.Priority,
			SentimentScore: processed.SentimentScore,
		},
	})

	return &IntakeResult{
		TicketID:   saved.TicketID,
		CustomerID: saved.CustomerID,
		Customer:   info,
		Processed:  processed,
	}, nil
}

// ProcessBatch processes tickets sequentially. The batch aborts on the
// first failing ticket; results for already-committed tickets are returned
// alongside the error so callers can report partial progress.
func (s *IntakeService) ProcessBatch(ctx context.Context, contents []string) ([]IntakeResult, error) {
	results := make([]IntakeResult, 0, len(contents))
	for i, content := range contents {
		result, err := s.ProcessTicket(ctx, content)
		if err != nil {
			s.logger.Error("batch aborted",
				zap.Int("ticket_index", i),
				zap.Int("processed", len(results)),
				zap.Error(err))
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *IntakeService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
