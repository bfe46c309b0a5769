// Command seed processes a fixed batch of sample tickets covering the
// category, priority and sentiment spread, printing the generated ids.
// The batch aborts on the first failing ticket.
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

var sampleTickets = []string{
	`
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
`,
	`
Subject: Can't login to my account

Hi there,

I've been trying to log into my account for the past hour but I keep getting an error message
saying "Invalid credentials" even though I'm 100% sure my password is correct. I've tried
resetting it twice already and the same issue happens.

This is really frustrating because I need to access my dashboard for an important presentation
tomorrow morning.

Account email: mike.chen@techcorp.com
Account name: Mike Chen

Thanks for your help.

Mike
`,
	`
Subject: Feature Request - Dark Mode

Hello!

I absolutely love your product! I use it every day and it's been a game-changer for my workflow.

I was wondering if you could add a dark mode option? I often work late at night and it would
be much easier on my eyes. I noticed some of your competitors have this feature and it would
be amazing to have it in your app too.

Keep up the great work!

Best regards,
Account name: Emma Wilson
Account email: emma.wilson@design.io
`,
	`
Subject: Question about pricing plans

Hi,

I'm currently on the Basic plan and I'm considering upgrading to Pro. Could you explain what
the main differences are? I see that Pro has "advanced analytics" but I'm not sure what that
includes exactly.

Also, if I upgrade mid-month, will I be charged the full amount or prorated?

Thanks!

Account name: James Rodriguez
Account email: j.rodriguez@startup.com
`,
	`
Subject: URGENT - System down, losing revenue!

THIS IS CRITICAL!!!

Our entire payment processing system has been down for 3 HOURS. We are losing thousands of
dollars every minute this continues. Our customers can't complete purchases and we're getting
bombarded with complaints.

This is absolutely UNACCEPTABLE for an enterprise plan customer. We need someone on this
IMMEDIATELY or we're switching providers and demanding a full refund.

Contact me NOW: 555-0199

Account name: David Park
Account email: david.park@enterprise.com
Director of Operations
`,
	`
Subject: Thank you for the excellent support!

Hi team,

I just wanted to send a quick note to say thank you for the amazing support I received
yesterday from Alex. He was patient, knowledgeable, and went above and beyond to help me
set up my integration.

Your product is fantastic and your support team makes it even better. Keep it up!

Cheers,
Account name: Lisa Anderson
Account email: lisa.anderson@creative.co
`,
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

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

	fmt.Printf("Processing %d sample tickets...\n", len(sampleTickets))
	results, err := intake.ProcessBatch(ctx, sampleTickets)
	for i, result := range results {
		fmt.Printf("[%d/%d] ticket #%d customer #%d %s/%s sentiment %.2f\n",
			i+1, len(sampleTickets),
			result.TicketID, result.CustomerID,
			result.Processed.Category, result.Processed.Priority,
			result.Processed.SentimentScore)
	}
	if err != nil {
		return fmt.Errorf("batch aborted after %d tickets: %w", len(results), err)
	}

	fmt.Printf("All %d tickets processed\n", len(results))
	return nil
}
