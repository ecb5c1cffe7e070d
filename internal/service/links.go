package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LinkService принимает и удаляет ссылки каталога.
type LinkService struct {
	storage repository.Storage
}

func NewLinkService(storage repository.Storage) *LinkService {
	return &LinkService{
		storage: storage,
	}
}

// Submit проверяет и сохраняет новую ссылку. Все поля обязательны,
// URL должен соответствовать выбранной платформе.
func (s *LinkService) Submit(ctx context.Context, link *domain.Link) error {
	link.Title = strings.TrimSpace(link.Title)
	link.Description = strings.TrimSpace(link.Description)
	link.URL = strings.TrimSpace(link.URL)

	if link.Title == "" {
		return NewValidationError("title is required")
	}
	if link.Description == "" {
		return NewValidationError("description is required")
	}
	if link.URL == "" {
		return NewValidationError("url is required")
	}
	if link.PlatformID == uuid.Nil {
		return NewValidationError("platform is required")
	}
	if link.CategoryID == uuid.Nil {
		return NewValidationError("category is required")
	}

	platform, err := s.storage.GetPlatform(ctx, link.PlatformID)
	if err != nil {
		if err == repository.ErrPlatformNotFound {
			return NewValidationError("unknown platform")
		}
		return fmt.Errorf("failed to get platform: %w", err)
	}

	if _, err := s.storage.GetCategory(ctx, link.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return NewValidationError("unknown category")
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if err := validateURLForPlatform(link.URL, platform.Name); err != nil {
		return err
	}

	if err := s.storage.SaveLink(ctx, link); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

// Delete удаляет ссылку вместе с жалобами на нее.
func (s *LinkService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteLink(ctx, id); err != nil {
		if err == repository.ErrLinkNotFound {
			return err
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// validateURLForPlatform проверяет URL по правилам платформы.
// Платформы без правил принимают любой URL.
func validateURLForPlatform(url, platformName string) error {
	switch platformName {
	case domain.PlatformWhatsApp:
		if !strings.Contains(url, "chat.whatsapp.com/") && !strings.Contains(url, "wa.me/") {
			return NewValidationError("url must be a valid WhatsApp link (chat.whatsapp.com or wa.me)")
		}
	case domain.PlatformTelegram:
		if !strings.Contains(url, "t.me/") {
			return NewValidationError("url must be a valid Telegram link (t.me)")
		}
	case domain.PlatformFacebook:
		if !strings.Contains(url, "facebook.com") && !strings.Contains(url, "fb.com") {
			return NewValidationError("url must be a valid Facebook link (facebook.com or fb.com)")
		}
	}
	return nil
}
