package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/kos-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
)

func TestCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rooms")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM payments WHERE status = ANY($1) AND paid_date >= $2 AND paid_date <= $3")).
		WithArgs(sqlmock.AnyArg(), windowStart, windowEnd).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), models.CollectionRooms, models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	n, err = repo.Count(context.Background(), models.CollectionPayments, models.Filter{
		Statuses: []string{models.PaymentPaid},
		Range:    &models.TimeRange{Field: models.FieldPaidDate, From: windowStart, To: windowEnd},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_OpenRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tenants WHERE created_at <= $1")).
		WithArgs(windowEnd).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.Count(context.Background(), models.CollectionTenants, models.Filter{
		Range: &models.TimeRange{Field: models.FieldCreatedAt, To: windowEnd},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAggregate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM payments WHERE status = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow("1250000.50", 3))

	totals, err := repo.Aggregate(context.Background(), models.CollectionPayments,
		models.Filter{Statuses: models.OutstandingStatuses}, models.FieldAmount)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250000.50").Equal(totals.Sum))
	assert.Equal(t, int64(3), totals.Count)
}

func TestAggregate_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM payments")).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow("0", 0))

	totals, err := repo.Aggregate(context.Background(), models.CollectionPayments, models.Filter{}, models.FieldAmount)
	require.NoError(t, err)
	assert.True(t, totals.Sum.IsZero())
	assert.Zero(t, totals.Count)
}

func TestGroupBy(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT category, COUNT(*), 0, 0 FROM complaints WHERE created_at >= $1 AND created_at <= $2 "+
			"GROUP BY category ORDER BY COUNT(*) DESC, category ASC")).
		WithArgs(windowStart, windowEnd).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count", "sum", "avg"}).
			AddRow("LISTRIK", 3, "0", "0").
			AddRow("AIR", 1, "0", "0"))

	groups, err := repo.GroupBy(context.Background(), models.CollectionComplaints, models.GroupQuery{
		By:     models.FieldCategory,
		Filter: models.Filter{Range: &models.TimeRange{Field: models.FieldCreatedAt, From: windowStart, To: windowEnd}},
		Order:  models.OrderCountDesc,
	})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "LISTRIK", groups[0].Key)
	assert.Equal(t, int64(3), groups[0].Count)
	assert.Equal(t, "AIR", groups[1].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupBy_SumAndAvg(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT type, COUNT(*), 0, COALESCE(AVG(monthly_price), 0) FROM rooms GROUP BY type ORDER BY type ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count", "sum", "avg"}).
			AddRow(models.RoomStandard, 3, "0", "1500000.00").
			AddRow(models.RoomVIP, 1, "0", "3000000.00"))

	groups, err := repo.GroupBy(context.Background(), models.CollectionRooms, models.GroupQuery{
		By: models.FieldType, Avg: models.FieldMonthlyPrice,
	})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 1500000.0, groups[0].Avg.InexactFloat64())
	assert.Equal(t, 3000000.0, groups[1].Avg.InexactFloat64())
}

func TestReportQueries_RejectUnknownIdentifiers(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	_, err := repo.Count(ctx, models.Collection("users"), models.Filter{})
	assert.ErrorContains(t, err, "unknown collection")

	_, err = repo.Aggregate(ctx, models.CollectionTenants, models.Filter{}, models.FieldAmount)
	assert.ErrorContains(t, err, "unknown field")

	_, err = repo.GroupBy(ctx, models.CollectionRooms, models.GroupQuery{By: "number; DROP TABLE rooms"})
	assert.ErrorContains(t, err, "unknown field")

	_, err = repo.Count(ctx, models.CollectionRooms, models.Filter{
		Range: &models.TimeRange{Field: models.FieldPaidDate, From: windowStart},
	})
	assert.ErrorContains(t, err, "unknown field")

	assert.NoError(t, mock.ExpectationsWereMet())
}
