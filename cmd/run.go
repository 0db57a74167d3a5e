package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"matchday/application"
	"matchday/config"
	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/events"
	"matchday/infrastructure"
	"matchday/repository"
)

// Runtime holds the wired application and the resources it owns
type Runtime struct {
	App *application.App

	db   *database.DB
	nats *infrastructure.NATSClient
}

// Close releases the runtime's connections
func (r *Runtime) Close() {
	if r.nats != nil {
		if err := r.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}
	if r.db != nil {
		r.db.Close()
	}
}

// Setup connects to the database, optionally to NATS, and wires the
// application facade. Callers own the returned runtime and must close it.
func Setup(ctx context.Context) (*Runtime, error) {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	application.RegisterSubscriptions(eventBus)

	runtime := &Runtime{db: db}

	if cfg.NATSServers != "" {
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureEventStream(); err != nil {
			natsClient.Close()
			db.Close()
			return nil, fmt.Errorf("failed to ensure event stream: %w", err)
		}
		natsPublisher.BridgeBus(eventBus)

		runtime.nats = natsClient
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return events.NewTransactionalBus(eventBus)
	})

	runtime.App = application.New(application.Config{
		UnitOfWorkFactory: uowFactory,
		Publisher:         events.NewPublisher(eventBus),
		StartingPoints:    cfg.StartingPoints,

		UserRepository:             repository.NewUserRepository(db),
		PointTransactionRepository: repository.NewPointTransactionRepository(db),
		TeamRepository:             repository.NewTeamRepository(db),
		MatchRepository:            repository.NewMatchRepository(db),
		PredictionRepository:       repository.NewPredictionRepository(db),
		GiftRepository:             repository.NewGiftRepository(db),
		RedemptionRepository:       repository.NewRedemptionRepository(db),
	})

	return runtime, nil
}

// Run initializes the application and blocks until the context is cancelled
func Run(ctx context.Context) error {
	log.Println("Starting matchday...")

	runtime, err := Setup(ctx)
	if err != nil {
		return err
	}

	upcoming, err := runtime.App.GetMatchesByStatus(ctx, entities.MatchStatusUpcoming)
	if err != nil {
		runtime.Close()
		return fmt.Errorf("failed to query upcoming matches: %w", err)
	}
	log.Printf("Running in %s mode, %d upcoming matches", config.Get().Environment, len(upcoming))

	<-ctx.Done()

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing connections...")
	runtime.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
