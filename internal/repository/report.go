package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/lib/pq"
)

// columns lists the fields each collection exposes to report queries.
// Identifiers are only ever taken from here, never from callers verbatim.
var columns = map[models.Collection][]string{
	models.CollectionPayments: {
		models.FieldStatus, models.FieldAmount, models.FieldPaymentMonth,
		models.FieldPaidDate, models.FieldDueDate, models.FieldCreatedAt,
	},
	models.CollectionRooms: {
		models.FieldStatus, models.FieldType, models.FieldMonthlyPrice, models.FieldCreatedAt,
	},
	models.CollectionTenants: {
		models.FieldStatus, models.FieldCreatedAt,
	},
	models.CollectionComplaints: {
		models.FieldStatus, models.FieldCategory, models.FieldCreatedAt,
	},
}

func checkField(c models.Collection, field string) error {
	fields, ok := columns[c]
	if !ok {
		return fmt.Errorf("unknown collection %q", c)
	}
	if !slices.Contains(fields, field) {
		return fmt.Errorf("unknown field %q for %s", field, c)
	}
	return nil
}

// whereClause renders f as a SQL WHERE clause with positional arguments
func whereClause(c models.Collection, f models.Filter) (string, []any, error) {
	if _, ok := columns[c]; !ok {
		return "", nil, fmt.Errorf("unknown collection %q", c)
	}

	var (
		conds []string
		args  []any
	)
	if len(f.Statuses) > 0 {
		args = append(args, pq.Array(f.Statuses))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if rg := f.Range; rg != nil {
		if err := checkField(c, rg.Field); err != nil {
			return "", nil, err
		}
		if !rg.From.IsZero() {
			args = append(args, rg.From)
			conds = append(conds, fmt.Sprintf("%s >= $%d", rg.Field, len(args)))
		}
		if !rg.To.IsZero() {
			args = append(args, rg.To)
			conds = append(conds, fmt.Sprintf("%s <= $%d", rg.Field, len(args)))
		}
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// Count returns the number of records in c matching f
func (r *Repository) Count(ctx context.Context, c models.Collection, f models.Filter) (int64, error) {
	where, args, err := whereClause(c, f)
	if err != nil {
		return 0, err
	}

	var n int64
	query := "SELECT COUNT(*) FROM " + string(c) + where
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c, err)
	}
	return n, nil
}

// Aggregate returns the sum of sumField and the row count over records in c
// matching f. An empty match yields zero for both.
func (r *Repository) Aggregate(ctx context.Context, c models.Collection, f models.Filter, sumField string) (models.Totals, error) {
	var totals models.Totals
	if err := checkField(c, sumField); err != nil {
		return totals, err
	}
	where, args, err := whereClause(c, f)
	if err != nil {
		return totals, err
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(%s), 0), COUNT(*) FROM %s%s", sumField, c, where)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&totals.Sum, &totals.Count); err != nil {
		return totals, fmt.Errorf("failed to aggregate %s: %w", c, err)
	}
	return totals, nil
}

// GroupBy groups records in c matching q.Filter by q.By, counting each group
// and optionally summing q.Sum and averaging q.Avg
func (r *Repository) GroupBy(ctx context.Context, c models.Collection, q models.GroupQuery) ([]models.Group, error) {
	if err := checkField(c, q.By); err != nil {
		return nil, err
	}
	sumExpr, avgExpr := "0", "0"
	if q.Sum != "" {
		if err := checkField(c, q.Sum); err != nil {
			return nil, err
		}
		sumExpr = fmt.Sprintf("COALESCE(SUM(%s), 0)", q.Sum)
	}
	if q.Avg != "" {
		if err := checkField(c, q.Avg); err != nil {
			return nil, err
		}
		avgExpr = fmt.Sprintf("COALESCE(AVG(%s), 0)", q.Avg)
	}
	where, args, err := whereClause(c, q.Filter)
	if err != nil {
		return nil, err
	}

	order := q.By + " ASC"
	if q.Order == models.OrderCountDesc {
		order = "COUNT(*) DESC, " + q.By + " ASC"
	}
	query := fmt.Sprintf("SELECT %s, COUNT(*), %s, %s FROM %s%s GROUP BY %s ORDER BY %s",
		q.By, sumExpr, avgExpr, c, where, q.By, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", c, q.By, err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.Key, &g.Count, &g.Sum, &g.Avg); err != nil {
			return nil, fmt.Errorf("failed to scan %s group: %w", c, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s groups: %w", c, err)
	}
	return groups, nil
}
