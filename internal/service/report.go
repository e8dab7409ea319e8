package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	paymentMonthLayout = "2006-01"
	monthLabelLayout   = "Jan 2006"
	trendDays          = 7
)

var hundred = decimal.NewFromInt(100)

// ReportStore is the query interface the report engine reads from
type ReportStore interface {
	Count(ctx context.Context, c models.Collection, f models.Filter) (int64, error)
	Aggregate(ctx context.Context, c models.Collection, f models.Filter, sumField string) (models.Totals, error)
	GroupBy(ctx context.Context, c models.Collection, q models.GroupQuery) ([]models.Group, error)
}

// ReportEngine computes the analytical snapshot behind the reports page
type ReportEngine struct {
	store ReportStore
	log   *logrus.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewReportEngine initializes a report engine reading from store
func NewReportEngine(store ReportStore, log *logrus.Logger, loc *time.Location) *ReportEngine {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportEngine{store: store, log: log, loc: loc, now: time.Now}
}

// ComputeReport builds a report for window. All store queries run
// concurrently; any failure fails the whole report.
func (e *ReportEngine) ComputeReport(ctx context.Context, window ReportWindow) (*models.Report, error) {
	now := e.now().In(e.loc)
	start, end, err := window.resolve(now)
	if err != nil {
		return nil, err
	}

	paidInWindow := models.Filter{
		Statuses: []string{models.PaymentPaid},
		Range:    &models.TimeRange{Field: models.FieldPaidDate, From: start, To: end},
	}
	paymentsInWindow := models.Filter{
		Range: &models.TimeRange{Field: models.FieldPaidDate, From: start, To: end},
	}
	complaintsInWindow := models.Filter{
		Range: &models.TimeRange{Field: models.FieldCreatedAt, From: start, To: end},
	}
	recent := models.Filter{
		Range: &models.TimeRange{Field: models.FieldCreatedAt, From: now.AddDate(0, 0, -trendDays), To: now},
	}

	var (
		report = &models.Report{
			DateRange: models.DateRange{
				Start: start.In(e.loc).Format(dateLayout),
				End:   end.In(e.loc).Format(dateLayout),
			},
		}
		monthly           []models.Group
		revenue           models.Totals
		paymentStatuses   []models.Group
		outstanding       models.Totals
		complaintStatus   []models.Group
		complaintCategory []models.Group
		roomTypes         []models.Group
	)

	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, c models.Collection, f models.Filter) {
		g.Go(func() error {
			n, err := e.store.Count(gctx, c, f)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", c, err)
			}
			*dst = n
			return nil
		})
	}
	aggregate := func(dst *models.Totals, c models.Collection, f models.Filter, sum string) {
		g.Go(func() error {
			t, err := e.store.Aggregate(gctx, c, f, sum)
			if err != nil {
				return fmt.Errorf("failed to aggregate %s: %w", c, err)
			}
			*dst = t
			return nil
		})
	}
	group := func(dst *[]models.Group, c models.Collection, q models.GroupQuery) {
		g.Go(func() error {
			rows, err := e.store.GroupBy(gctx, c, q)
			if err != nil {
				return fmt.Errorf("failed to group %s by %s: %w", c, q.By, err)
			}
			*dst = rows
			return nil
		})
	}

	// Revenue
	group(&monthly, models.CollectionPayments, models.GroupQuery{
		By: models.FieldPaymentMonth, Filter: paidInWindow, Sum: models.FieldAmount, Order: models.OrderKeyAsc,
	})
	aggregate(&revenue, models.CollectionPayments, paidInWindow, models.FieldAmount)

	// Occupancy, all rooms
	occ := &report.Occupancy
	count(&occ.Total, models.CollectionRooms, models.Filter{})
	count(&occ.Occupied, models.CollectionRooms, models.Filter{Statuses: []string{models.RoomOccupied}})
	count(&occ.Available, models.CollectionRooms, models.Filter{Statuses: []string{models.RoomAvailable}})
	count(&occ.Maintenance, models.CollectionRooms, models.Filter{Statuses: []string{models.RoomMaintenance}})

	// Payments; outstanding ignores the window
	group(&paymentStatuses, models.CollectionPayments, models.GroupQuery{
		By: models.FieldStatus, Filter: paymentsInWindow, Sum: models.FieldAmount, Order: models.OrderKeyAsc,
	})
	aggregate(&outstanding, models.CollectionPayments,
		models.Filter{Statuses: models.OutstandingStatuses}, models.FieldAmount)

	// Complaints
	group(&complaintStatus, models.CollectionComplaints, models.GroupQuery{
		By: models.FieldStatus, Filter: complaintsInWindow, Order: models.OrderKeyAsc,
	})
	group(&complaintCategory, models.CollectionComplaints, models.GroupQuery{
		By: models.FieldCategory, Filter: complaintsInWindow, Order: models.OrderCountDesc,
	})

	// Tenants, all time
	tenants := &report.Tenants
	count(&tenants.Active, models.CollectionTenants, models.Filter{Statuses: []string{models.TenantActive}})
	count(&tenants.Left, models.CollectionTenants, models.Filter{Statuses: []string{models.TenantLeft}})
	count(&tenants.Suspended, models.CollectionTenants, models.Filter{Statuses: []string{models.TenantSuspended}})

	// Rooms by type
	group(&roomTypes, models.CollectionRooms, models.GroupQuery{
		By: models.FieldType, Avg: models.FieldMonthlyPrice, Order: models.OrderKeyAsc,
	})

	// Trailing seven days from now, independent of the window
	trends := &report.Trends.Last7Days
	count(&trends.Payments, models.CollectionPayments, recent)
	count(&trends.Complaints, models.CollectionComplaints, recent)
	count(&trends.NewTenants, models.CollectionTenants, recent)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Revenue = revenueStats(monthly, revenue)
	occ.Rate = occupancyRate(occ.Occupied, occ.Total)
	report.Payments = paymentStats(paymentStatuses, outstanding)
	report.Complaints = complaintStats(complaintStatus, complaintCategory)
	tenants.Total = tenants.Active + tenants.Left + tenants.Suspended
	report.Rooms = roomStats(roomTypes)

	e.log.WithFields(logrus.Fields{
		"start":        report.DateRange.Start,
		"end":          report.DateRange.End,
		"transactions": report.Revenue.TransactionCount,
	}).Debug("Report computed")

	return report, nil
}

func revenueStats(monthly []models.Group, totals models.Totals) models.RevenueStats {
	stats := models.RevenueStats{
		Monthly:          make([]models.MonthlyRevenue, 0, len(monthly)),
		Total:            totals.Sum.InexactFloat64(),
		TransactionCount: totals.Count,
	}
	for _, m := range monthly {
		stats.Monthly = append(stats.Monthly, models.MonthlyRevenue{
			Month:   monthLabel(m.Key),
			Revenue: m.Sum.InexactFloat64(),
			Count:   m.Count,
		})
	}
	if totals.Count > 0 {
		stats.Average = totals.Sum.Div(decimal.NewFromInt(totals.Count)).InexactFloat64()
	}
	return stats
}

// monthLabel renders a YYYY-MM payment month as "Jan 2025". Tokens in any
// other shape are returned unchanged.
func monthLabel(token string) string {
	t, err := time.Parse(paymentMonthLayout, token)
	if err != nil {
		return token
	}
	return t.Format(monthLabelLayout)
}

func occupancyRate(occupied, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(occupied).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2).InexactFloat64()
}

func paymentStats(byStatus []models.Group, outstanding models.Totals) models.PaymentStats {
	stats := models.PaymentStats{
		ByStatus: make([]models.PaymentStatusCount, 0, len(byStatus)),
		Outstanding: models.Outstanding{
			Amount: outstanding.Sum.InexactFloat64(),
			Count:  outstanding.Count,
		},
	}
	for _, s := range byStatus {
		stats.ByStatus = append(stats.ByStatus, models.PaymentStatusCount{
			Status: s.Key,
			Count:  s.Count,
			Total:  s.Sum.InexactFloat64(),
		})
	}
	return stats
}

func complaintStats(byStatus, byCategory []models.Group) models.ComplaintStats {
	stats := models.ComplaintStats{
		ByStatus:   make([]models.StatusCount, 0, len(byStatus)),
		ByCategory: make([]models.CategoryCount, 0, len(byCategory)),
	}
	for _, s := range byStatus {
		stats.ByStatus = append(stats.ByStatus, models.StatusCount{Status: s.Key, Count: s.Count})
		stats.Total += s.Count
	}
	for _, c := range byCategory {
		stats.ByCategory = append(stats.ByCategory, models.CategoryCount{Category: c.Key, Count: c.Count})
	}
	return stats
}

func roomStats(byType []models.Group) models.RoomStats {
	stats := models.RoomStats{ByType: make([]models.RoomTypeStats, 0, len(byType))}
	for _, t := range byType {
		stats.ByType = append(stats.ByType, models.RoomTypeStats{
			Type:         t.Key,
			Count:        t.Count,
			AveragePrice: t.Avg.InexactFloat64(),
		})
	}
	return stats
}
