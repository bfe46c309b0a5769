package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-classifier/internal/domain"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// SaveTicketInput carries everything needed to persist one classified ticket.
type SaveTicketInput struct {
	CustomerEmail  string
	CustomerName   string
	RawContent     string
	Summary        string
	Category       domain.Category
	Priority       domain.Priority
	SentimentScore float64
}

// SaveTicketResult returns the identifiers generated by a successful commit.
type SaveTicketResult struct {
	CustomerID int64
	TicketID   int64
}

// IntakeRepository persists classified tickets and serves reads for the API.
type IntakeRepository interface {
	SaveProcessedTicket(ctx context.Context, input SaveTicketInput) (SaveTicketResult, error)
	GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, *domain.Customer, error)
	ListRecentTickets(ctx context.Context, limit, offset int) ([]domain.Ticket, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// dbConn is the slice of *pgxpool.Pool the repository relies on.
type dbConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type intakeRepository struct {
	db dbConn
}

// NewIntakeRepository instantiates the repository.
func NewIntakeRepository(pool *pgxpool.Pool) IntakeRepository {
	return &intakeRepository{db: pool}
}

// SaveProcessedTicket upserts the customer by email and inserts the ticket
// inside a single transaction. Both rows commit or neither does; the
// returned ids are only valid after the commit succeeds.
func (r *intakeRepository) SaveProcessedTicket(ctx context.Context, input SaveTicketInput) (SaveTicketResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return SaveTicketResult{}, apperrors.NewPersistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var result SaveTicketResult

	const upsertCustomer = `
        INSERT INTO customers (email, name)
        VALUES ($1, $2)
        ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
        RETURNING id`
	if err := tx.QueryRow(ctx, upsertCustomer, input.CustomerEmail, input.CustomerName).Scan(&result.CustomerID); err != nil {
		return SaveTicketResult{}, apperrors.NewPersistenceError("failed to upsert customer", err)
	}

	const insertTicket = `
        INSERT INTO tickets (customer_id, raw_content, summary, category, priority, sentiment_score)
        VALUES ($1, $2, $3, $4::category_enum, $5::priority_enum, $6)
        RETURNING id`
	if err := tx.QueryRow(ctx, insertTicket,
		result.CustomerID,
		input.RawContent,
		input.Summary,
		input.Category,
		input.Priority,
		input.SentimentScore,
	).Scan(&result.TicketID); err != nil {
		return SaveTicketResult{}, apperrors.NewPersistenceError("failed to insert ticket", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SaveTicketResult{}, apperrors.NewPersistenceError("failed to commit transaction", err)
	}
	return result, nil
}

func (r *intakeRepository) GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, *domain.Customer, error) {
	const query = `
        SELECT t.id, t.customer_id, t.raw_content, t.summary, t.category, t.priority,
               t.sentiment_score, t.created_at,
               c.id, c.email, c.name, c.created_at
        FROM tickets t
        JOIN customers c ON c.id = t.customer_id
        WHERE t.id = $1`

	var ticket domain.Ticket
	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.CustomerID,
		&ticket.RawContent,
		&ticket.Summary,
		&ticket.Category,
		&ticket.Priority,
		&ticket.SentimentScore,
		&ticket.CreatedAt,
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, nil, apperrors.NewPersistenceError("failed to fetch ticket", err)
	}
	return &ticket, &customer, nil
}

func (r *intakeRepository) ListRecentTickets(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, customer_id, raw_content, summary, category, priority, sentiment_score, created_at
        FROM tickets
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list tickets", err)
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CustomerID,
			&ticket.RawContent,
			&ticket.Summary,
			&ticket.Category,
			&ticket.Priority,
			&ticket.SentimentScore,
			&ticket.CreatedAt,
		); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan ticket", err)
		}
		result = append(result, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to read ticket rows", err)
	}
	return result, nil
}

func (r *intakeRepository) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const query = `SELECT id, email, name, created_at FROM customers WHERE email = $1`

	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"email": email})
		}
		return nil, apperrors.NewPersistenceError("failed to fetch customer", err)
	}
	return &customer, nil
}
