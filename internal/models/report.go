package models

// Report is the analytical snapshot for one time window
type Report struct {
	Revenue    RevenueStats   `json:"revenue"`
	Occupancy  OccupancyStats `json:"occupancy"`
	Payments   PaymentStats   `json:"payments"`
	Complaints ComplaintStats `json:"complaints"`
	Tenants    TenantStats    `json:"tenants"`
	Rooms      RoomStats      `json:"rooms"`
	Trends     TrendStats     `json:"trends"`
	DateRange  DateRange      `json:"dateRange"`
}

// RevenueStats represents realized revenue in the window
type RevenueStats struct {
	Monthly          []MonthlyRevenue `json:"monthly"`
	Total            float64          `json:"total"`
	TransactionCount int64            `json:"transactionCount"`
	Average          float64          `json:"average"`
}

// MonthlyRevenue represents revenue for one payment month
type MonthlyRevenue struct {
	Month   string  `json:"month"` // Format: Jan 2025
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// OccupancyStats represents room occupancy across all rooms
type OccupancyStats struct {
	Total       int64   `json:"total"`
	Occupied    int64   `json:"occupied"`
	Available   int64   `json:"available"`
	Maintenance int64   `json:"maintenance"`
	Rate        float64 `json:"rate"` // Percent, two decimals
}

// PaymentStats represents payment status breakdown
type PaymentStats struct {
	ByStatus    []PaymentStatusCount `json:"byStatus"`
	Outstanding Outstanding          `json:"outstanding"`
}

// PaymentStatusCount is the count and amount for one payment status
type PaymentStatusCount struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}

// Outstanding represents all pending and late payments regardless of window
type Outstanding struct {
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// ComplaintStats represents complaint breakdowns
type ComplaintStats struct {
	ByStatus   []StatusCount   `json:"byStatus"`
	ByCategory []CategoryCount `json:"byCategory"`
	Total      int64           `json:"total"`
}

// StatusCount is a count for one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryCount is a count for one complaint category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// TenantStats represents tenants by status
type TenantStats struct {
	Active    int64 `json:"active"`
	Left      int64 `json:"left"`
	Suspended int64 `json:"suspended"`
	Total     int64 `json:"total"`
}

// RoomStats represents room distribution
type RoomStats struct {
	ByType []RoomTypeStats `json:"byType"`
}

// RoomTypeStats is the count and average monthly price for one room type
type RoomTypeStats struct {
	Type         string  `json:"type"`
	Count        int64   `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
}

// TrendStats holds fixed operational counters
type TrendStats struct {
	Last7Days RecentActivity `json:"last7Days"`
}

// RecentActivity counts records created in the trailing seven days
type RecentActivity struct {
	Payments   int64 `json:"payments"`
	Complaints int64 `json:"complaints"`
	NewTenants int64 `json:"newTenants"`
}

// DateRange echoes the effective window
type DateRange struct {
	Start string `json:"start"` // Format: YYYY-MM-DD
	End   string `json:"end"`   // Format: YYYY-MM-DD
}
