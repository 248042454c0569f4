package pgxstore

import (
	"fmt"

	"github.com/screwyprof/stakeview/web/history"
)

// SQL queries
const (
	baseSnapshotsQuery = `SELECT id, address, delegation_total, unbonding_total, native_reward,
		reward_sum, rewards, withdraw_eligible, state, currency, recorded_at
		FROM staking_snapshots`
)

// SnapshotsQueryBuilder provides a domain-specific language for building snapshot queries
type SnapshotsQueryBuilder struct {
	sql   string
	args  []any
	where bool
}

// NewSnapshotsQuery creates a new snapshot query builder
func NewSnapshotsQuery() *SnapshotsQueryBuilder {
	return &SnapshotsQueryBuilder{
		sql: baseSnapshotsQuery,
	}
}

// ForCriteria applies the snapshot criteria to the query in one fluent call
func (q *SnapshotsQueryBuilder) ForCriteria(criteria history.SnapshotsCriteria) *SnapshotsQueryBuilder {
	return q.
		filterByAddress(criteria.Address).
		orderByRecordedAtDesc().
		paginateWithDetection(criteria)
}

// filterByAddress restricts the history to one delegator
func (q *SnapshotsQueryBuilder) filterByAddress(address string) *SnapshotsQueryBuilder {
	q.addWhereCondition("address = $%d", address)
	return q
}

// orderByRecordedAtDesc orders most recent first, id breaks ties
func (q *SnapshotsQueryBuilder) orderByRecordedAtDesc() *SnapshotsQueryBuilder {
	q.sql += " ORDER BY recorded_at DESC, id DESC"
	return q
}

// paginateWithDetection adds pagination with "has more" detection using LIMIT n+1
func (q *SnapshotsQueryBuilder) paginateWithDetection(criteria history.SnapshotsCriteria) *SnapshotsQueryBuilder {
	limit := criteria.ItemsPerPage() + 1
	offset := criteria.ItemsToSkip()

	q.addParameter("LIMIT $%d", limit)

	if offset > 0 {
		q.addParameter("OFFSET $%d", offset)
	}

	return q
}

// Build returns the final SQL query and arguments
func (q *SnapshotsQueryBuilder) Build() (string, []any) {
	return q.sql, q.args
}

// addWhereCondition adds a WHERE condition, handling AND logic automatically
func (q *SnapshotsQueryBuilder) addWhereCondition(sqlClause string, value any) {
	keyword := " WHERE "
	if q.where {
		keyword = " AND "
	}
	q.where = true

	q.sql += keyword + fmt.Sprintf(sqlClause, q.nextPlaceholder())
	q.args = append(q.args, value)
}

// addParameter adds a SQL clause with a parameter
func (q *SnapshotsQueryBuilder) addParameter(sqlClause string, value any) {
	q.sql += " " + fmt.Sprintf(sqlClause, q.nextPlaceholder())
	q.args = append(q.args, value)
}

// nextPlaceholder returns the next PostgreSQL placeholder ($1, $2, etc.)
func (q *SnapshotsQueryBuilder) nextPlaceholder() int {
	return len(q.args) + 1
}
