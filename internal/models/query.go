package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection names a record kind the report store can aggregate
type Collection string

const (
	CollectionPayments   Collection = "payments"
	CollectionRooms      Collection = "rooms"
	CollectionTenants    Collection = "tenants"
	CollectionComplaints Collection = "complaints"
)

// Field names understood by the report store
const (
	FieldStatus       = "status"
	FieldCategory     = "category"
	FieldType         = "type"
	FieldAmount       = "amount"
	FieldMonthlyPrice = "monthly_price"
	FieldPaymentMonth = "payment_month"
	FieldPaidDate     = "paid_date"
	FieldDueDate      = "due_date"
	FieldCreatedAt    = "created_at"
)

// TimeRange restricts a timestamp field to [From, To]. A zero bound is open.
type TimeRange struct {
	Field string
	From  time.Time
	To    time.Time
}

// Filter selects records for count and aggregate queries
type Filter struct {
	Statuses []string
	Range    *TimeRange
}

// GroupOrder controls the ordering of grouped results
type GroupOrder int

const (
	OrderKeyAsc GroupOrder = iota
	OrderCountDesc
)

// GroupQuery describes a group-by aggregation
type GroupQuery struct {
	By     string
	Filter Filter
	Sum    string // optional field to sum
	Avg    string // optional field to average
	Order  GroupOrder
}

// Group is one row of a group-by aggregation. Missing aggregates are zero.
type Group struct {
	Key   string
	Count int64
	Sum   decimal.Decimal
	Avg   decimal.Decimal
}

// Totals is the result of a sum/count aggregate. Empty sets yield zero.
type Totals struct {
	Sum   decimal.Decimal
	Count int64
}
