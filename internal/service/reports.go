package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ReportService принимает жалобы пользователей и проводит их модерацию.
type ReportService struct {
	storage repository.Storage
}

func NewReportService(storage repository.Storage) *ReportService {
	return &ReportService{
		storage: storage,
	}
}

// Submit создает жалобу на ссылку со статусом pending. Причина
// обязательна, пробельная строка не принимается.
func (s *ReportService) Submit(ctx context.Context, linkID, userID uuid.UUID, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, NewValidationError("reason is required")
	}
	if userID == uuid.Nil {
		return nil, NewValidationError("authentication is required")
	}

	if _, err := s.storage.GetLink(ctx, linkID); err != nil {
		if err == repository.ErrLinkNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	report := &domain.Report{
		LinkID: linkID,
		UserID: userID,
		Reason: reason,
		Status: domain.ReportStatusPending,
	}
	if err := s.storage.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return report, nil
}

// List возвращает жалобы с фильтром по статусу. Пустой статус
// означает все жалобы.
func (s *ReportService) List(ctx context.Context, status string) ([]*domain.Report, error) {
	if status != "" && !domain.ValidReportStatus(status) {
		return nil, NewValidationError("unknown report status")
	}

	reports, err := s.storage.ListReports(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Approve помечает жалобу рассмотренной. Допустимо только из pending.
func (s *ReportService) Approve(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, domain.ReportStatusReviewed)
}

// Reject отклоняет жалобу. Допустимо только из pending.
func (s *ReportService) Reject(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, domain.ReportStatusRejected)
}

func (s *ReportService) transition(ctx context.Context, id uuid.UUID, status string) error {
	if err := s.storage.UpdateReportStatus(ctx, id, status); err != nil {
		if err == repository.ErrReportNotFound || err == repository.ErrReportFinalized {
			return err
		}
		return fmt.Errorf("failed to update report status: %w", err)
	}
	return nil
}
