package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"matchday/cmd"
	"matchday/database"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatal("Migration error:", err)
			}
			return
		case "settle":
			if err := handleSettleCommand(); err != nil {
				log.Fatal("Settlement error:", err)
			}
			return
		case "retry-settle":
			if err := handleRetrySettleCommand(); err != nil {
				log.Fatal("Settlement retry error:", err)
			}
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: matchday migrate [up|down|status] [args...]")
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}

// handleSettleCommand finalizes a match and settles all open predictions
func handleSettleCommand() error {
	if len(os.Args) < 5 {
		return fmt.Errorf("usage: matchday settle <match-id> <home-score> <away-score>")
	}

	matchID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", os.Args[2], err)
	}
	homeScore, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid home score %q: %w", os.Args[3], err)
	}
	awayScore, err := strconv.Atoi(os.Args[4])
	if err != nil {
		return fmt.Errorf("invalid away score %q: %w", os.Args[4], err)
	}

	ctx := context.Background()
	runtime, err := cmd.Setup(ctx)
	if err != nil {
		return err
	}
	defer runtime.Close()

	result, err := runtime.App.SettleMatch(ctx, matchID, homeScore, awayScore)
	if err != nil {
		return err
	}

	log.Printf("Settled match %d: %d/%d predictions, %d points credited",
		matchID, result.PredictionsSettled, result.PredictionsTotal, result.PointsCredited)
	return nil
}

// handleRetrySettleCommand re-runs settlement over a finalized match's
// remaining open predictions
func handleRetrySettleCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: matchday retry-settle <match-id>")
	}

	matchID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", os.Args[2], err)
	}

	ctx := context.Background()
	runtime, err := cmd.Setup(ctx)
	if err != nil {
		return err
	}
	defer runtime.Close()

	result, err := runtime.App.RetrySettlement(ctx, matchID)
	if err != nil {
		return err
	}

	log.Printf("Retried settlement for match %d: %d/%d predictions, %d points credited",
		matchID, result.PredictionsSettled, result.PredictionsTotal, result.PointsCredited)
	return nil
}
