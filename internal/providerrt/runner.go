package providerrt

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
	"github.com/sport-log/sport-log-server/internal/pkg/worker"
)

// Outcome is one event's processing result.
type Outcome int

const (
	// OutcomeProcessed: the event's data was fetched and written.
	OutcomeProcessed Outcome = iota
	// OutcomeNoCredential: username/password were absent for this event
	// (§4.3 step 3.a).
	OutcomeNoCredential
	// OutcomeLoginFailed: authentication against the third-party platform
	// failed (§4.3 step 3.b), or the handler gave up on the event after a
	// later fetch or server call failed.
	OutcomeLoginFailed
)

// EventHandler is a concrete provider's per-event work: steps b-e of the
// execution contract (authenticate, fetch, translate, break-on-known). The
// runner itself owns step a (credential presence). Step f (insertion) is
// left to the handler too, since the local record shape is provider-specific;
// the runner provides the Client to write through.
type EventHandler func(ctx context.Context, client *Client, event domain.ExecutableActionEvent) Outcome

// Run executes one provider invocation (§4.3 execution contract): fetch the
// window's events, process each concurrently through a worker pool, then
// disable the union of processed and failed ids. Concurrency is capped by
// poolSize, which should track what the shared HTTP client can sustain (§9).
func Run(ctx context.Context, client *Client, poolSize int, lookback, lookahead time.Duration, handle EventHandler, log *zap.Logger) error {
	events, err := client.GetEvents(ctx, time.Now().UTC(), lookback, lookahead)
	if err != nil {
		return err
	}
	log.Info("fetched executable events", zap.Int("count", len(events)))
	if len(events) == 0 {
		return nil
	}

	pool, err := worker.NewPool(ctx, "provider-events", poolSize)
	if err != nil {
		return err
	}
	defer pool.Shutdown(30 * time.Second)

	var (
		mu       sync.Mutex
		disabled []idtype.ActionEventID
		wg       sync.WaitGroup
	)

	for _, event := range events {
		event := event
		wg.Add(1)
		submitErr := pool.Submit(ctx, func(taskCtx context.Context) {
			defer wg.Done()

			var outcome Outcome
			if event.Username == nil || event.Password == nil {
				outcome = OutcomeNoCredential
			} else {
				outcome = handle(taskCtx, client, event)
			}

			log.Debug("event processed",
				zap.Int64("action_event_id", int64(event.ID)),
				zap.Int("outcome", int(outcome)),
			)

			mu.Lock()
			disabled = append(disabled, event.ID)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			log.Error("submit event task", zap.Error(submitErr), zap.Int64("action_event_id", int64(event.ID)))
			mu.Lock()
			disabled = append(disabled, event.ID)
			mu.Unlock()
		}
	}

	wg.Wait()

	return client.DisableEvents(ctx, disabled)
}
