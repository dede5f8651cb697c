// Package admins provides agent account and credential management.
package admins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingauto/chatdesk/internal/db"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
)

// Roles an admin account can hold.
const (
	RoleAdmin = "admin"
	RoleSuper = "super"
)

// Errors returned by admin account operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Service provides admin account management.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

// NewService creates a new admins service.
func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "admins")),
	}
}

// Login authenticates by username and password.
func (s *Service) Login(ctx context.Context, username, password string) (Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return Admin{}, ErrInvalidCredentials
	}
	row, err := s.queries.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, err
	}
	if !row.IsActive {
		return Admin{}, ErrInactiveAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	if _, err := s.queries.UpdateAdminLastLogin(ctx, row.ID); err != nil {
		s.logger.Warn("touch last login failed", slog.Any("error", err))
	}
	return toAdmin(row), nil
}

// Get returns an admin by id.
func (s *Service) Get(ctx context.Context, id int64) (Admin, error) {
	row, err := s.queries.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrAdminNotFound
		}
		return Admin{}, err
	}
	return toAdmin(row), nil
}

// List returns all admin accounts.
func (s *Service) List(ctx context.Context) ([]Admin, error) {
	rows, err := s.queries.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Admin, 0, len(rows))
	for _, row := range rows {
		items = append(items, toAdmin(row))
	}
	return items, nil
}

// Create creates a new admin account with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Admin, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return Admin{}, fmt.Errorf("username is required")
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		return Admin{}, fmt.Errorf("password is required")
	}
	role, err := normalizeRole(req.Role)
	if err != nil {
		return Admin{}, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}

	row, err := s.queries.CreateAdmin(ctx, sqlc.CreateAdminParams{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     active,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Admin{}, ErrUsernameTaken
		}
		return Admin{}, err
	}
	return toAdmin(row), nil
}

// Delete removes an admin account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteAdmin(ctx, id)
}

// IsSuper reports whether the admin holds the super role.
func (s *Service) IsSuper(ctx context.Context, id int64) (bool, error) {
	row, err := s.queries.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return row.Role == RoleSuper, nil
}

// EnsureSeedAdmin creates the initial super admin when the table is empty.
func (s *Service) EnsureSeedAdmin(ctx context.Context, username, password string) error {
	count, err := s.queries.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return fmt.Errorf("admin username/password required in config.toml")
	}
	if _, err := s.Create(ctx, CreateRequest{
		Username: username,
		Password: password,
		Role:     RoleSuper,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info("seeded initial admin", slog.String("username", username))
	return nil
}

func normalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "":
		return RoleAdmin, nil
	case RoleAdmin, RoleSuper:
		return role, nil
	}
	return "", fmt.Errorf("unknown role: %q", role)
}

func toAdmin(row sqlc.Admin) Admin {
	return Admin{
		ID:          row.ID,
		Username:    row.Username,
		Role:        row.Role,
		IsActive:    row.IsActive,
		CreatedAt:   db.TimeFromPg(row.CreatedAt),
		LastLoginAt: db.TimeFromPg(row.LastLoginAt),
	}
}
