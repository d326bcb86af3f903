package postgres

import (
	"context"
	"fmt"
	"time"
)

// ownerKind classifies how a syncable table's rows relate to a caller.
type ownerKind int

const (
	// ownerGlobal rows are visible to every caller (shared catalogues).
	ownerGlobal ownerKind = iota
	// ownerUser rows always carry a user_id; only the owner sees them.
	ownerUser
	// ownerOptionalUser rows have a nullable user_id: shared when null,
	// owner-only otherwise (§4.4 "user_id = caller OR user_id IS NULL").
	ownerOptionalUser
)

// syncableTables lists every soft-deletable table reachable through the
// per-table sync/epoch/GC endpoints (§4.4, §4.2 Phase C).
var syncableTables = map[string]ownerKind{
	"user":                ownerGlobal,
	"platform":            ownerGlobal,
	"action_provider":     ownerGlobal,
	"action":              ownerGlobal,
	"platform_credential": ownerUser,
	"action_rule":         ownerUser,
	"action_event":        ownerUser,
	"cardio_session":      ownerUser,
	"wod":                 ownerUser,
	"movement":            ownerOptionalUser,
}

// EpochMaxLastChange is the query behind each table's epoch endpoint: the
// current maximum last_change, which clients advance their sync cursor to
// (§4.4 "Epoch endpoints per table return the current max last_change").
func (r *Repository) EpochMaxLastChange(ctx context.Context, table string) (time.Time, error) {
	if _, ok := syncableTables[table]; !ok {
		return time.Time{}, fmt.Errorf("postgres: unknown syncable table %q", table)
	}
	var max time.Time
	query := fmt.Sprintf(`SELECT COALESCE(MAX(last_change), to_timestamp(0)) FROM %q`, table)
	if err := r.db.GetContext(ctx, &max, query); err != nil {
		return time.Time{}, wrapInternal(err, "query epoch")
	}
	return max, nil
}

// SyncRowIDs returns the ids of rows in table visible to callerUserID since
// cursor: last_change >= cursor, including tombstones (§4.4). Callers pass
// the result through the entity-specific loader; this exists once instead
// of once per entity because the predicate only varies by ownerKind.
func (r *Repository) SyncRowIDs(ctx context.Context, table string, callerUserID int64, cursor time.Time) ([]int64, error) {
	kind, ok := syncableTables[table]
	if !ok {
		return nil, fmt.Errorf("postgres: unknown syncable table %q", table)
	}

	var ids []int64
	var err error
	switch kind {
	case ownerGlobal:
		query := fmt.Sprintf(`SELECT id FROM %q WHERE last_change >= $1 ORDER BY id`, table)
		err = r.db.SelectContext(ctx, &ids, query, cursor)
	case ownerOptionalUser:
		query := fmt.Sprintf(`SELECT id FROM %q WHERE last_change >= $1 AND (user_id = $2 OR user_id IS NULL) ORDER BY id`, table)
		err = r.db.SelectContext(ctx, &ids, query, cursor, callerUserID)
	default: // ownerUser
		query := fmt.Sprintf(`SELECT id FROM %q WHERE last_change >= $1 AND user_id = $2 ORDER BY id`, table)
		err = r.db.SelectContext(ctx, &ids, query, cursor, callerUserID)
	}
	if err != nil {
		return nil, wrapInternal(err, "query sync row ids")
	}
	return ids, nil
}
