package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Run executes one pass of the three scheduler phases (§4.2), grounded
// directly on the original scheduler's main: create upcoming ActionEvents
// from enabled ActionRules, delete ActionEvents past their Action's
// delete_after window, then (if enabled) garbage collect old tombstones.
// Each phase's failure is logged and does not block the next phase, matching
// the original's independent error handling per phase.
func Run(ctx context.Context, client *Client, gcMinDays uint32, log *zap.Logger) {
	now := time.Now().UTC()

	if err := createActionEvents(ctx, client, now); err != nil {
		log.Error("create action events", zap.Error(err))
	}
	if err := deleteActionEvents(ctx, client, now); err != nil {
		log.Error("delete action events", zap.Error(err))
	}
	if gcMinDays > 0 {
		cutoff := now.AddDate(0, 0, -int(gcMinDays))
		if err := client.GarbageCollect(ctx, cutoff); err != nil {
			log.Error("garbage collection", zap.Error(err))
		}
	}
}

// createActionEvents is Phase A: expand every creatable rule into concrete
// events and bulk-insert them, relying on the server's partial unique index
// to silently ignore events that already exist.
func createActionEvents(ctx context.Context, client *Client, now time.Time) error {
	rules, err := client.CreatableActionRules(ctx)
	if err != nil {
		return err
	}

	var events []domain.ActionEvent
	for _, rule := range rules {
		for _, dt := range DatetimesForRule(rule, now) {
			events = append(events, domain.ActionEvent{
				ID:        idtype.New[idtype.ActionEventID](),
				UserID:    rule.UserID,
				ActionID:  rule.ActionID,
				DateTime:  dt,
				Arguments: rule.Arguments,
				Enabled:   true,
			})
		}
	}

	return client.CreateActionEvents(ctx, events)
}

// deleteActionEvents is Phase B: hard-request deletion of every event whose
// Action's delete_after window has elapsed since its datetime.
func deleteActionEvents(ctx context.Context, client *Client, now time.Time) error {
	events, err := client.DeletableActionEvents(ctx)
	if err != nil {
		return err
	}

	var ids []int64
	for _, e := range events {
		if !now.Before(e.DateTime.Add(e.DeleteAfter)) {
			ids = append(ids, int64(e.ID))
		}
	}

	return client.DeleteActionEvents(ctx, ids)
}
