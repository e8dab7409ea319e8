package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Dan9191/kos-service/internal/auth"
	"github.com/Dan9191/kos-service/internal/config"
	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) CreatePayment(ctx context.Context, p *models.Payment, next func(string) (string, error)) error {
	args := m.Called(ctx, p)
	if err := args.Error(0); err != nil {
		return err
	}
	inv, err := next(args.String(1))
	if err != nil {
		return err
	}
	p.InvoiceNumber = inv
	return nil
}

func (m *mockPaymentRepo) ListPayments(ctx context.Context, f models.PaymentFilter) ([]models.Payment, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentRepo) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) UpdatePayment(ctx context.Context, id string, patch models.PaymentPatch) (*models.Payment, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockPaymentRepo) DeletePayment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour, Location: time.UTC}
}

func newTestService(users *mockUserRepo, payments *mockPaymentRepo) *Service {
	return newServiceWith(Repositories{Users: users, Payments: payments})
}

func newServiceWith(repos Repositories) *Service {
	s := NewService(repos, testLogger(), testConfig())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{ID: "u-1", Email: "admin@kos.com", PasswordHash: string(hash), Role: models.RoleAdmin}

	users := new(mockUserRepo)
	users.On("FindUserByEmail", mock.Anything, "admin@kos.com").Return(admin, nil)
	users.On("FindUserByEmail", mock.Anything, "nobody@kos.com").Return(nil, repository.ErrNotFound)
	s := NewService(Repositories{Users: users}, testLogger(), testConfig())

	token, user, err := s.Login(context.Background(), " Admin@Kos.com ", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, admin, user)
	id, err := auth.ParseToken([]byte("test-secret"), token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: "u-1", Role: models.RoleAdmin}, id)

	_, _, err = s.Login(context.Background(), "admin@kos.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(context.Background(), "nobody@kos.com", "rahasia123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdmin(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindUserByEmail", mock.Anything, "admin@kos.com").Return(nil, repository.ErrNotFound).Once()
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "admin@kos.com" && u.Role == models.RoleAdmin &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin12345")) == nil
	})).Return(nil)
	s := newTestService(users, nil)

	user, err := s.CreateAdmin(context.Background(), "Administrator", "admin@kos.com", "admin12345")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", user.Name)
	users.AssertExpectations(t)
}

func TestCreateAdmin_Rejects(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindUserByEmail", mock.Anything, "admin@kos.com").Return(&models.User{ID: "u-1"}, nil)
	s := newTestService(users, nil)

	_, err := s.CreateAdmin(context.Background(), "Administrator", "admin@kos.com", "admin12345")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = s.CreateAdmin(context.Background(), "", "not-an-email", "short")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestCreateAdmin_ConcurrentInsert(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindUserByEmail", mock.Anything, "admin@kos.com").Return(nil, repository.ErrNotFound)
	users.On("CreateUser", mock.Anything, mock.Anything).
		Return(fmt.Errorf("failed to create user: %w: duplicate key value", repository.ErrConflict))
	s := newTestService(users, nil)

	_, err := s.CreateAdmin(context.Background(), "Administrator", "admin@kos.com", "admin12345")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCurrentUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindUserByID", mock.Anything, "u-1").Return(&models.User{ID: "u-1"}, nil)
	s := newTestService(users, nil)

	_, err := s.CurrentUser(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-1"})
	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func validPaymentInput() CreatePaymentInput {
	return CreatePaymentInput{
		TenantID:     "t-1",
		RoomID:       "r-1",
		PaymentMonth: "2025-03",
		Amount:       decimal.NewFromInt(1500000),
		Method:       models.MethodTransfer,
		DueDate:      "2025-03-10",
	}
}

func TestCreatePayment(t *testing.T) {
	payments := new(mockPaymentRepo)
	payments.On("CreatePayment", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil, "INV-041")
	s := newTestService(nil, payments)

	p, err := s.CreatePayment(context.Background(), validPaymentInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-042", p.InvoiceNumber)
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, fixedNow, p.PaidDate)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), p.DueDate)
	assert.Nil(t, p.Note)
}

func TestCreatePayment_Validation(t *testing.T) {
	s := newTestService(nil, new(mockPaymentRepo))

	in := validPaymentInput()
	in.TenantID = ""
	in.PaymentMonth = "2025-13"
	in.Amount = decimal.NewFromInt(-5)
	in.Method = "CEK"
	in.Status = "UNKNOWN"
	in.DueDate = "besok"

	_, err := s.CreatePayment(context.Background(), in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"penyewaId", "bulanPembayaran", "jumlah", "metodePembayaran", "status", "jatuhTempo"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestCreatePayment_RepositoryError(t *testing.T) {
	payments := new(mockPaymentRepo)
	payments.On("CreatePayment", mock.Anything, mock.Anything).Return(errors.New("insert failed"), "")
	s := newTestService(nil, payments)

	_, err := s.CreatePayment(context.Background(), validPaymentInput())
	assert.EqualError(t, err, "insert failed")
}

func TestListPayments_Pagination(t *testing.T) {
	payments := new(mockPaymentRepo)
	payments.On("ListPayments", mock.Anything, models.PaymentFilter{Status: models.PaymentPaid, Limit: 10, Offset: 10}).
		Return([]models.Payment{{ID: "p-11"}}, int64(21), nil)
	payments.On("ListPayments", mock.Anything, models.PaymentFilter{Limit: 100, Offset: 0}).
		Return(nil, int64(0), nil)
	s := newTestService(nil, payments)

	page, err := s.ListPayments(context.Background(), models.PaymentFilter{Status: models.PaymentPaid}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 10, Total: 21, TotalPages: 3, HasMore: true}, page.Pagination)
	assert.Len(t, page.Items, 1)

	page, err = s.ListPayments(context.Background(), models.PaymentFilter{}, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 100}, page.Pagination)
	assert.NotNil(t, page.Items)
}

func TestUpdatePayment(t *testing.T) {
	payments := new(mockPaymentRepo)
	status := models.PaymentPaid
	paid := "2025-03-08"
	payments.On("UpdatePayment", mock.Anything, "p-1", mock.MatchedBy(func(p models.PaymentPatch) bool {
		return p.Status != nil && *p.Status == models.PaymentPaid &&
			p.PaidDate != nil && p.PaidDate.Equal(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)) &&
			p.Amount == nil && p.DueDate == nil
	})).Return(&models.Payment{ID: "p-1", InvoiceNumber: "INV-004", Status: models.PaymentPaid}, nil)
	s := newTestService(nil, payments)

	p, err := s.UpdatePayment(context.Background(), "p-1", UpdatePaymentInput{Status: &status, PaidDate: &paid})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, p.Status)
	payments.AssertExpectations(t)
}

func TestUpdatePayment_Validation(t *testing.T) {
	s := newTestService(nil, new(mockPaymentRepo))
	month, method, status, due := "03-2025", "CEK", "", "besok"
	amount := decimal.NewFromInt(-1)

	_, err := s.UpdatePayment(context.Background(), "p-1", UpdatePaymentInput{
		PaymentMonth: &month, Method: &method, Status: &status, DueDate: &due, Amount: &amount,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"bulanPembayaran", "metodePembayaran", "status", "jatuhTempo", "jumlah"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestGetAndDeletePayment(t *testing.T) {
	payments := new(mockPaymentRepo)
	payments.On("GetPayment", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
	payments.On("DeletePayment", mock.Anything, "p-1").Return(nil)
	s := newTestService(nil, payments)

	_, err := s.GetPayment(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, s.DeletePayment(context.Background(), "p-1"))
	payments.AssertExpectations(t)
}
