package postgres

import (
	"context"
	"fmt"
	"time"
)

// gcTables lists the soft-deletable tables garbage collection sweeps (§4.2
// Phase C). Order matters only for readability here: each table's DELETE
// runs as its own statement, with no enclosing transaction, and there are no
// foreign keys among tombstoned rows that would require a particular
// deletion order.
var gcTables = []string{
	"platform_credential",
	"action_rule",
	"action_event",
	"cardio_session",
	"wod",
	"movement",
	"action",
	"action_provider",
	"platform",
	"user",
}

// GarbageCollect hard-deletes every row across the soft-deletable tables
// whose last_change predates cutoff and which is already soft-deleted
// (§4.2 "DELETE WHERE deleted = true AND last_change < cutoff"). Rows more
// recent than cutoff are retained even if deleted, so clients that have not
// yet synced still see the tombstone.
func (r *Repository) GarbageCollect(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for _, table := range gcTables {
		query := fmt.Sprintf(`DELETE FROM %q WHERE deleted = true AND last_change < $1`, table)
		res, err := r.db.ExecContext(ctx, query, cutoff)
		if err != nil {
			return total, wrapInternal(err, fmt.Sprintf("garbage collect %s", table))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, wrapInternal(err, "read rows affected")
		}
		total += n
	}
	return total, nil
}
