package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-classifier/internal/classifier"
	"github.com/spec-kit/ticket-classifier/internal/domain"
	"github.com/spec-kit/ticket-classifier/internal/events"
	"github.com/spec-kit/ticket-classifier/internal/observability"
	"github.com/spec-kit/ticket-classifier/internal/repository"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

type scriptedClassifier struct {
	result  classifier.ProcessedTicket
	failOn  map[int]error
	calls   int
	lastCtx context.Context
}

func (s *scriptedClassifier) Classify(ctx context.Context, content string) (classifier.ProcessedTicket, error) {
	s.calls++
	s.lastCtx = ctx
	if err, ok := s.failOn[s.calls]; ok {
		return classifier.ProcessedTicket{}, err
	}
	return s.result, nil
}

// fakeRepo mirrors the store contract: customers upsert by email with
// last-writer-wins on name, tickets get sequential ids.
type fakeRepo struct {
	mu           sync.Mutex
	customers    map[string]int64
	names        map[string]string
	nextCustomer int64
	nextTicket   int64
	saved        []repository.SaveTicketInput
	saveErr      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		customers:    map[string]int64{},
		names:        map[string]string{},
		nextCustomer: 1,
		nextTicket:   1,
	}
}

func (f *fakeRepo) SaveProcessedTicket(ctx context.Context, input repository.SaveTicketInput) (repository.SaveTicketResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return repository.SaveTicketResult{}, f.saveErr
	}
	customerID, ok := f.customers[input.CustomerEmail]
	if !ok {
		customerID = f.nextCustomer
		f.customers[input.CustomerEmail] = customerID
		f.nextCustomer++
	}
	f.names[input.CustomerEmail] = input.CustomerName
	ticketID := f.nextTicket
	f.nextTicket++
	f.saved = append(f.saved, input)
	return repository.SaveTicketResult{CustomerID: customerID, TicketID: ticketID}, nil
}

func (f *fakeRepo) GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, *domain.Customer, error) {
	return nil, nil, apperrors.NewNotFound("ticket", nil)
}

func (f *fakeRepo) ListRecentTickets(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	return nil, nil
}

func (f *fakeRepo) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return nil, apperrors.NewNotFound("customer", nil)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (r *recordingDispatcher) typesSeen() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func billingResult() classifier.ProcessedTicket {
	return classifier.ProcessedTicket{
		Summary:        "Customer was charged twice and requests a refund.",
		Category:       domain.CategoryBilling,
		Priority:       domain.PriorityCritical,
		SentimentScore: 0.05,
	}
}

func newTestService(clf classifier.Classifier, repo repository.IntakeRepository, dispatcher events.Dispatcher) *IntakeService {
	return NewIntakeService(IntakeDependencies{
		Classifier:      clf,
		Repo:            repo,
		Dispatcher:      dispatcher,
		Metrics:         observability.NewMetrics(),
		Logger:          zap.NewNop(),
		ClassifyTimeout: time.Second,
	})
}

func TestProcessTicket(t *testing.T) {
	content := "Account email: sarah.johnson@email.com\nAccount name: Sarah Johnson\nI was charged twice and demand a refund!"
	clf := &scriptedClassifier{result: billingResult()}
	repo := newFakeRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTestService(clf, repo, dispatcher)

	result, err := svc.ProcessTicket(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.CustomerID)
	assert.Equal(t, int64(1), result.TicketID)
	assert.Equal(t, "sarah.johnson@email.com", result.Customer.Email)
	assert.Equal(t, "Sarah Johnson", result.Customer.Name)
	assert.Equal(t, domain.CategoryBilling, result.Processed.Category)
	assert.Equal(t, domain.PriorityCritical, result.Processed.Priority)
	assert.InDelta(t, 0.05, result.Processed.SentimentScore, 1e-9)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, content, repo.saved[0].RawContent)
	assert.Equal(t, "Sarah Johnson", repo.saved[0].CustomerName)

	assert.Equal(t, []events.EventType{events.EventTicketProcessed}, dispatcher.typesSeen())
}

func TestProcessTicketEmptyContent(t *testing.T) {
	svc := newTestService(&scriptedClassifier{}, newFakeRepo(), nil)

	_, err := svc.ProcessTicket(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestProcessTicketClassificationFailure(t *testing.T) {
	clf := &scriptedClassifier{
		failOn: map[int]error{1: apperrors.NewClassificationError("model call failed", nil)},
	}
	repo := newFakeRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTestService(clf, repo, dispatcher)

	_, err := svc.ProcessTicket(context.Background(), "some ticket")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeClassification))

	assert.Empty(t, repo.saved, "nothing may be persisted when classification fails")
	assert.Equal(t, []events.EventType{events.EventClassificationFailed}, dispatcher.typesSeen())
}

func TestProcessTicketPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = apperrors.NewPersistenceError("failed to commit transaction", nil)
	svc := newTestService(&scriptedClassifier{result: billingResult()}, repo, nil)

	_, err := svc.ProcessTicket(context.Background(), "some ticket")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePersistence))
}

func TestProcessTicketUpsertIdempotence(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(&scriptedClassifier{result: billingResult()}, repo, nil)

	first, err := svc.ProcessTicket(context.Background(), "Email: lisa.anderson@creative.co\nName: Lisa A.")
	require.NoError(t, err)
	second, err := svc.ProcessTicket(context.Background(), "Email: lisa.anderson@creative.co\nName: Lisa Anderson")
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID, "same email must resolve to one customer")
	assert.NotEqual(t, first.TicketID, second.TicketID)
	assert.Equal(t, "Lisa Anderson", repo.names["lisa.anderson@creative.co"], "latest name wins")
}

func TestProcessBatch(t *testing.T) {
	contents := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		contents = append(contents, fmt.Sprintf("Email: user%d@example.com\nName: User %d\nhelp please", i, i))
	}
	repo := newFakeRepo()
	svc := newTestService(&scriptedClassifier{result: billingResult()}, repo, nil)

	results, err := svc.ProcessBatch(context.Background(), contents)
	require.NoError(t, err)
	require.Len(t, results, 6)

	seenCustomers := map[int64]bool{}
	for i, result := range results {
		assert.Equal(t, int64(i+1), result.TicketID, "ticket ids follow submission order")
		assert.False(t, seenCustomers[result.CustomerID], "customer ids must be distinct")
		seenCustomers[result.CustomerID] = true
	}
}

func TestProcessBatchAbortsOnFirstFailure(t *testing.T) {
	clf := &scriptedClassifier{
		result: billingResult(),
		failOn: map[int]error{3: apperrors.NewClassificationError("model call failed", nil)},
	}
	repo := newFakeRepo()
	svc := newTestService(clf, repo, nil)

	results, err := svc.ProcessBatch(context.Background(), []string{"one", "two", "three", "four"})
	require.Error(t, err)
	assert.Len(t, results, 2, "tickets before the failure remain committed")
	assert.Len(t, repo.saved, 2)
	assert.Equal(t, 3, clf.calls, "batch stops at the failing ticket")
}

func TestProcessTicketClassifyTimeoutBound(t *testing.T) {
	clf := &scriptedClassifier{result: billingResult()}
	svc := newTestService(clf, newFakeRepo(), nil)

	_, err := svc.ProcessTicket(context.Background(), "some ticket")
	require.NoError(t, err)

	deadline, ok := clf.lastCtx.Deadline()
	require.True(t, ok, "classifier context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}
