package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AdminService управляет ролями пользователей и собирает сводку для
// панели администратора.
type AdminService struct {
	storage repository.Storage
}

func NewAdminService(storage repository.Storage) *AdminService {
	return &AdminService{
		storage: storage,
	}
}

// UserAccount пользователь вместе с его ролью для списка в панели.
type UserAccount struct {
	User    *domain.User
	IsAdmin bool
}

// Stats счетчики для сводки панели администратора.
type Stats struct {
	TotalLinks     int64
	TotalUsers     int64
	TotalReports   int64
	PendingReports int64
}

// ListUsers объединяет список пользователей с множеством администраторов:
// роль выводится из членства в admin_roles, не из записи пользователя.
func (s *AdminService) ListUsers(ctx context.Context) ([]*UserAccount, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	adminIDs, err := s.storage.ListAdminIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin ids: %w", err)
	}
	admins := make(map[uuid.UUID]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	accounts := make([]*UserAccount, 0, len(users))
	for _, user := range users {
		_, isAdmin := admins[user.ID]
		accounts = append(accounts, &UserAccount{
			User:    user,
			IsAdmin: isAdmin,
		})
	}
	return accounts, nil
}

// Promote добавляет пользователя в администраторы.
func (s *AdminService) Promote(ctx context.Context, userID uuid.UUID) error {
	if err := s.storage.AddAdminRole(ctx, userID); err != nil {
		if err == repository.ErrUserNotFound {
			return err
		}
		return fmt.Errorf("failed to add admin role: %w", err)
	}
	return nil
}

// Demote убирает пользователя из администраторов. Снятие роли
// действует со следующего запроса: членство проверяется каждый раз.
func (s *AdminService) Demote(ctx context.Context, userID uuid.UUID) error {
	if err := s.storage.RemoveAdminRole(ctx, userID); err != nil {
		return fmt.Errorf("failed to remove admin role: %w", err)
	}
	return nil
}

// DeleteUser не поддерживается: удаление учетных записей требует
// привилегий, которых у приложения нет.
func (s *AdminService) DeleteUser(_ context.Context, _ uuid.UUID) error {
	return repository.ErrNotAvailable
}

// Dashboard собирает счетчики для сводки панели.
func (s *AdminService) Dashboard(ctx context.Context) (*Stats, error) {
	links, err := s.storage.CountLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count links: %w", err)
	}

	users, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	reports, err := s.storage.CountReports(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	pending, err := s.storage.CountReports(ctx, domain.ReportStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	return &Stats{
		TotalLinks:     links,
		TotalUsers:     users,
		TotalReports:   reports,
		PendingReports: pending,
	}, nil
}
