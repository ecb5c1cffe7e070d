package repository

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrLinkNotFound     = errors.New("link not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrPlatformNotFound = errors.New("platform not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrReportFinalized  = errors.New("report is not pending")
	// ErrNotAvailable помечает операции, недоступные в этом развертывании
	// (например, удаление пользователя без сервисных прав).
	ErrNotAvailable = errors.New("operation not available")
)

// LinkFilter задает область выборки ссылок: категория и/или платформа.
// Пустой фильтр означает все ссылки.
type LinkFilter struct {
	CategoryID *uuid.UUID
	PlatformID *uuid.UUID
}

type Storage interface {
	// User methods
	CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Admin membership methods. IsAdmin is always a relation lookup,
	// never a cached flag.
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
	AddAdminRole(ctx context.Context, userID uuid.UUID) error
	RemoveAdminRole(ctx context.Context, userID uuid.UUID) error

	// Category and platform methods
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListPlatforms(ctx context.Context) ([]*domain.Platform, error)
	GetPlatform(ctx context.Context, id uuid.UUID) (*domain.Platform, error)

	// Link methods
	SaveLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	// DeleteLink removes the link and every report referencing it.
	DeleteLink(ctx context.Context, id uuid.UUID) error
	// ListLinks returns the rows [offset, offset+limit) ordered by
	// created_at descending plus the exact total for the same filter.
	ListLinks(ctx context.Context, filter LinkFilter, offset, limit int) ([]*domain.Link, int64, error)

	// Report methods
	SaveReport(ctx context.Context, report *domain.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	// ListReports filters by status; empty status means all.
	ListReports(ctx context.Context, status string) ([]*domain.Report, error)
	// UpdateReportStatus transitions a pending report; returns
	// ErrReportFinalized if the report is no longer pending.
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error

	// Dashboard counters
	CountLinks(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountReports(ctx context.Context, status string) (int64, error)
}
