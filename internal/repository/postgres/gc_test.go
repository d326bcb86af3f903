package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarbageCollect_SumsAcrossTables(t *testing.T) {
	repo, mock := newTestRepository(t)

	for range gcTables {
		mock.ExpectExec(`DELETE FROM`).WillReturnResult(sqlmock.NewResult(0, 2))
	}

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	total, err := repo.GarbageCollect(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2*len(gcTables)), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
