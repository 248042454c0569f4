package pgxstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/web/history"
	"github.com/screwyprof/stakeview/web/store/pgxstore"
)

func TestSnapshotsQueryBuilder(t *testing.T) {
	t.Parallel()

	t.Run("it filters by address and asks for one extra row", func(t *testing.T) {
		t.Parallel()

		// Arrange
		criteria, err := history.NewSnapshotsCriteria("terra1abc", 1, 10)
		require.NoError(t, err)

		// Act
		query, args := pgxstore.NewSnapshotsQuery().ForCriteria(criteria).Build()

		// Assert
		assert.Contains(t, query, "WHERE address = $1")
		assert.Contains(t, query, "ORDER BY recorded_at DESC, id DESC LIMIT $2")
		assert.NotContains(t, query, "OFFSET")
		assert.Equal(t, []any{"terra1abc", uint64(11)}, args)
	})

	t.Run("it skips earlier pages", func(t *testing.T) {
		t.Parallel()

		// Arrange
		criteria, err := history.NewSnapshotsCriteria("terra1abc", 3, 5)
		require.NoError(t, err)

		// Act
		query, args := pgxstore.NewSnapshotsQuery().ForCriteria(criteria).Build()

		// Assert
		assert.Contains(t, query, "LIMIT $2 OFFSET $3")
		assert.Equal(t, []any{"terra1abc", uint64(6), uint64(10)}, args)
	})
}
