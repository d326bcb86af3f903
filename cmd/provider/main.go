// Package main is the Sports-Tracker action-provider binary: a concrete
// instance of the provider runtime, servicing one third-party platform
// (§4.3, §6 cmd/provider).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/config"
	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/pkg/logger"
	"github.com/sport-log/sport-log-server/internal/providerrt"
	"github.com/sport-log/sport-log-server/internal/providerrt/sportstracker"
)

const (
	serviceName = "sportstracker"
	platform    = "sportstracker"

	lookback  = time.Hour
	lookahead = 65 * time.Minute

	maxIdleConnsPerHost = 8
)

func main() {
	setup := flag.Bool("setup", false, "register the platform, action provider and actions, then exit")
	adminPassword := flag.String("admin-password", "", "admin password, required with -setup")
	flag.Parse()

	if err := run(*setup, *adminPassword); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(setup bool, adminPassword string) error {
	cfg, err := config.LoadProvider(serviceName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	client := providerrt.NewClient(cfg.ServerURL, cfg.Name, cfg.Password)
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	client.HTTP.Transport = transport
	ctx := context.Background()

	if setup {
		if adminPassword == "" {
			return fmt.Errorf("-admin-password is required with -setup")
		}
		description := "Sports-Tracker running and trail running sessions"
		actions := []providerrt.ActionSpec{
			{Name: "sync", Description: &description, CreateBefore: 7 * 24 * time.Hour, DeleteAfter: 30 * 24 * time.Hour},
		}
		if err := providerrt.Setup(ctx, client, adminPassword, platform, &description, actions); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		logger.Info("provider registered", zap.String("platform", platform))
		return nil
	}

	remote := sportstracker.New()
	handle := newEventHandler(remote)

	// The task cap follows the shared HTTP client's per-host connection pool.
	return providerrt.Run(ctx, client, transport.MaxIdleConnsPerHost, lookback, lookahead, handle, logger.L())
}

// newEventHandler builds the provider's per-event logic (§4.3 steps b-f):
// authenticate against Sports-Tracker, fetch the user's recent workouts,
// translate each into a CardioSession via the shared movement-normalization
// rule, and stop at the first workout the user already has recorded.
func newEventHandler(remote *sportstracker.Client) providerrt.EventHandler {
	return func(ctx context.Context, client *providerrt.Client, event domain.ExecutableActionEvent) providerrt.Outcome {
		token, ok, err := remote.Login(ctx, *event.Username, *event.Password)
		if err != nil || !ok {
			return providerrt.OutcomeLoginFailed
		}

		workouts, err := remote.FetchWorkouts(ctx, token)
		if err != nil {
			return providerrt.OutcomeLoginFailed
		}

		movements, err := client.ListMovements(ctx, event.UserID)
		if err != nil {
			return providerrt.OutcomeLoginFailed
		}
		byName := make(map[string]domain.Movement, len(movements))
		for _, m := range movements {
			byName[domain.NormalizeMovementName(m.Name)] = m
		}

		for _, w := range workouts {
			activity, ok := sportstracker.ActivityMovementName(w.ActivityID)
			if !ok {
				continue
			}
			movement, ok := byName[domain.NormalizeMovementName(activity)]
			if !ok {
				continue
			}

			datetime := time.UnixMilli(w.StartTime).UTC()

			conflict, err := client.CardioSessionConflict(ctx, event.UserID, movement.ID, datetime)
			if err != nil {
				return providerrt.OutcomeLoginFailed
			}
			if conflict {
				// Remote workouts arrive newest first; once one is already
				// recorded, every older one is too (§4.3 step 3.e).
				break
			}

			distance := w.TotalDistance
			duration := time.Duration(w.TotalTime * float64(time.Second))
			body := map[string]any{
				"movement_id": movement.ID,
				"datetime":    datetime.Format(time.RFC3339),
				"distance":    distance,
				"duration":    duration.Milliseconds(),
				"comments":    w.Description,
			}
			if err := client.CreateCardioSession(ctx, event.UserID, body); err != nil {
				return providerrt.OutcomeLoginFailed
			}
		}

		return providerrt.OutcomeProcessed
	}
}
