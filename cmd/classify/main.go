// Command classify runs the intake workflow once against a fixed sample
// ticket and prints the classification and generated identifiers.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spec-kit/ticket-classifier/internal/classifier"
	"github.com/spec-kit/ticket-classifier/internal/config"
	"github.com/spec-kit/ticket-classifier/internal/observability"
	"github.com/spec-kit/ticket-classifier/internal/persistence"
	"github.com/spec-kit/ticket-classifier/internal/repository"
	"github.com/spec-kit/ticket-classifier/internal/service"
)

const sampleTicket = `
Subject: Billing Error - Charged Twice This Month!

Hello,

I just checked my bank statement and noticed I was charged TWICE for my monthly subscription!
This is completely unacceptable. I've been a loyal customer for over 2 years and this has never
happened before.

I need this fixed IMMEDIATELY and I want a full refund for the duplicate charge. This better
not happen again or I'm canceling my subscription.

My account email is: sarah.johnson@email.com
Account name: Sarah Johnson

Please respond ASAP.

Frustrated,
Sarah Johnson
`

func main() {
	if err := run(); err != nil {
		log.Fatalf("classify failed: %v", err)
	}
}

// run keeps resource cleanup on defers so the pool is released on every
// exit path, success or failure.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.InitSchema {
		if err := persistence.InitSchema(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}
	}

	intake := service.NewIntakeService(service.IntakeDependencies{
		Classifier:      classifier.NewOpenAIClassifier(cfg.Classifier, logger),
		Repo:            repository.NewIntakeRepository(pg.PoolHandle()),
		Metrics:         observability.NewMetrics(),
		Logger:          logger,
		ClassifyTimeout: cfg.Classifier.Timeout(),
	})

	result, err := intake.ProcessTicket(ctx, sampleTicket)
	if err != nil {
		return err
	}

	fmt.Printf("Customer:  %s (%s)\n", result.Customer.Name, result.Customer.Email)
	fmt.Printf("Summary:   %s\n", result.Processed.Summary)
	fmt.Printf("Category:  %s\n", result.Processed.Category)
	fmt.Printf("Priority:  %s\n", result.Processed.Priority)
	fmt.Printf("Sentiment: %.2f\n", result.Processed.SentimentScore)
	fmt.Printf("Saved as ticket #%d for customer #%d\n", result.TicketID, result.CustomerID)
	return nil
}
