package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Dan9191/kos-service/internal/auth"
	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/sirupsen/logrus"
)

// Reporter computes reports
type Reporter interface {
	ComputeReport(ctx context.Context, window service.ReportWindow) (*models.Report, error)
}

// AuthService authenticates administrators
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// PaymentService manages payments
type PaymentService interface {
	CreatePayment(ctx context.Context, in service.CreatePaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, f models.PaymentFilter, page, limit int) (*models.Page[models.Payment], error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id string, in service.UpdatePaymentInput) (*models.Payment, error)
	DeletePayment(ctx context.Context, id string) error
}

// RoomService manages rooms
type RoomService interface {
	CreateRoom(ctx context.Context, in service.CreateRoomInput) (*models.Room, error)
	ListRooms(ctx context.Context, f models.RoomFilter, page, limit int) (*models.Page[models.Room], error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	UpdateRoom(ctx context.Context, id string, in service.UpdateRoomInput) (*models.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// TenantService manages tenants
type TenantService interface {
	CreateTenant(ctx context.Context, in service.CreateTenantInput) (*models.Tenant, error)
	ListTenants(ctx context.Context, f models.TenantFilter, page, limit int) (*models.Page[models.Tenant], error)
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, id string, in service.UpdateTenantInput) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

// ComplaintService manages complaints
type ComplaintService interface {
	CreateComplaint(ctx context.Context, in service.CreateComplaintInput) (*models.Complaint, error)
	ListComplaints(ctx context.Context, f models.ComplaintFilter, page, limit int) (*models.Page[models.Complaint], error)
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	UpdateComplaint(ctx context.Context, id string, in service.UpdateComplaintInput) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error
}

// Services groups the business logic the handler dispatches to
type Services struct {
	Reports    Reporter
	Auth       AuthService
	Payments   PaymentService
	Rooms      RoomService
	Tenants    TenantService
	Complaints ComplaintService
}

// Handler serves the HTTP API
type Handler struct {
	reports    Reporter
	auth       AuthService
	payments   PaymentService
	rooms      RoomService
	tenants    TenantService
	complaints ComplaintService
	log        *logrus.Logger
	loc        *time.Location
	sessionTTL time.Duration
}

// NewHandler initializes a new handler
func NewHandler(svcs Services, log *logrus.Logger, loc *time.Location, sessionTTL time.Duration) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		reports:    svcs.Reports,
		auth:       svcs.Auth,
		payments:   svcs.Payments,
		rooms:      svcs.Rooms,
		tenants:    svcs.Tenants,
		complaints: svcs.Complaints,
		log:        log,
		loc:        loc,
		sessionTTL: sessionTTL,
	}
}

// decodeBody reads a JSON request body into v, answering 400 on malformed input
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// pageParams reads the page and limit query parameters. Unparseable values
// are left to the service defaults.
func pageParams(q url.Values) (int, int) {
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return page, limit
}

// Health reports that the process is serving
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps service and repository errors to the response
// envelope. message is used for unexpected failures.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrInvalidWindow):
		response.Error(w, http.StatusBadRequest, "Invalid date range", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password", err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Record not found", err.Error())
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrUserExists):
		response.Error(w, http.StatusConflict, "Data already exists", err.Error())
	default:
		h.log.WithField("path", r.URL.Path).Errorf("%s: %v", message, err)
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
