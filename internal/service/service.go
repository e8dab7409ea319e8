package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/kos-service/internal/auth"
	"github.com/Dan9191/kos-service/internal/config"
	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when creating a user whose email is taken
	ErrUserExists = errors.New("user already exists")
)

// UserRepository is the user storage the service needs
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Repositories groups the storage backends of the service
type Repositories struct {
	Users      UserRepository
	Payments   PaymentRepository
	Rooms      RoomRepository
	Tenants    TenantRepository
	Complaints ComplaintRepository
}

// Service handles authentication and record management business logic
type Service struct {
	users      UserRepository
	payments   PaymentRepository
	rooms      RoomRepository
	tenants    TenantRepository
	complaints ComplaintRepository
	log        *logrus.Logger
	config     *config.Config
	now        func() time.Time
}

// NewService initializes a new service
func NewService(repos Repositories, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		users:      repos.Users,
		payments:   repos.Payments,
		rooms:      repos.Rooms,
		tenants:    repos.Tenants,
		complaints: repos.Complaints,
		log:        log,
		config:     cfg,
		now:        time.Now,
	}
}

// CreateAdmin creates an administrator with a hashed password
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fields := fieldErrors{}
	fields.required("name", name)
	if !emailPattern.MatchString(email) {
		fields.add("email", "email is invalid")
	}
	if len(password) < minPasswordLength {
		fields.add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with another create for the same email
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.log.Infof("Admin created: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a session token
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken([]byte(s.config.JWTSecret), user.ID, user.Role, s.config.SessionTTL, s.now())
	if err != nil {
		return "", nil, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// CurrentUser returns the user behind the authenticated identity in ctx
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return s.users.FindUserByID(ctx, id.UserID)
}
