package postgres

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage реализует интерфейс Storage для PostgreSQL
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- User Methods ---

// CreateUser создает нового пользователя с хешированным паролем
func (s *PostgresStorage) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	user := domain.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		s.log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("created new user", zap.String("user_id", user.ID.String()), zap.String("email", email))
	return &user, nil
}

// GetUserByEmail получает пользователя по email
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByID получает пользователя по ID
func (s *PostgresStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user by id", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpdateUser сохраняет изменения пользователя
func (s *PostgresStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		s.log.Error("failed to update user", zap.String("user_id", user.ID.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

// ListUsers возвращает всех пользователей в порядке регистрации
func (s *PostgresStorage) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User

	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// --- Admin Membership Methods ---

// IsAdmin проверяет членство пользователя в admin_roles. Результат
// никогда не кэшируется: снятие прав действует со следующего запроса.
func (s *PostgresStorage) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.AdminRole{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check admin membership", zap.String("user_id", userID.String()), zap.Error(err))
		return false, fmt.Errorf("failed to check admin membership: %w", err)
	}
	return count > 0, nil
}

// ListAdminIDs возвращает множество ID администраторов
func (s *PostgresStorage) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	var roles []domain.AdminRole
	err := s.db.WithContext(ctx).Find(&roles).Error
	if err != nil {
		s.log.Error("failed to list admin roles", zap.Error(err))
		return nil, fmt.Errorf("failed to list admin roles: %w", err)
	}

	ids := make([]uuid.UUID, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}
	return ids, nil
}

// AddAdminRole добавляет пользователя в множество администраторов
func (s *PostgresStorage) AddAdminRole(ctx context.Context, userID uuid.UUID) error {
	role := domain.AdminRole{ID: userID}
	err := s.db.WithContext(ctx).Create(&role).Error
	if err != nil {
		if isUniqueViolation(err) {
			// Уже администратор, булево членство идемпотентно
			return nil
		}
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		s.log.Error("failed to add admin role", zap.String("user_id", userID.String()), zap.Error(err))
		return fmt.Errorf("failed to add admin role: %w", err)
	}

	s.log.Info("granted admin role", zap.String("user_id", userID.String()))
	return nil
}

// RemoveAdminRole удаляет пользователя из множества администраторов
func (s *PostgresStorage) RemoveAdminRole(ctx context.Context, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", userID).Delete(&domain.AdminRole{})
	if result.Error != nil {
		s.log.Error("failed to remove admin role", zap.String("user_id", userID.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to remove admin role: %w", result.Error)
	}

	s.log.Info("revoked admin role", zap.String("user_id", userID.String()))
	return nil
}

// --- Category and Platform Methods ---

// ListCategories возвращает категории в алфавитном порядке
func (s *PostgresStorage) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category

	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		s.log.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// GetCategory получает категорию по ID
func (s *PostgresStorage) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCategoryNotFound
	}
	if err != nil {
		s.log.Error("failed to get category", zap.String("category_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// ListPlatforms возвращает все платформы
func (s *PostgresStorage) ListPlatforms(ctx context.Context) ([]*domain.Platform, error) {
	var platforms []*domain.Platform

	err := s.db.WithContext(ctx).Order("name ASC").Find(&platforms).Error
	if err != nil {
		s.log.Error("failed to list platforms", zap.Error(err))
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}

	return platforms, nil
}

// GetPlatform получает платформу по ID
func (s *PostgresStorage) GetPlatform(ctx context.Context, id uuid.UUID) (*domain.Platform, error) {
	var platform domain.Platform

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&platform).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrPlatformNotFound
	}
	if err != nil {
		s.log.Error("failed to get platform", zap.String("platform_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}

	return &platform, nil
}

// --- Link Methods ---

// SaveLink сохраняет новую ссылку
func (s *PostgresStorage) SaveLink(ctx context.Context, link *domain.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		s.log.Error("failed to save link", zap.String("title", link.Title), zap.Error(err))
		return fmt.Errorf("failed to save link: %w", err)
	}

	s.log.Info("saved new link",
		zap.String("link_id", link.ID.String()),
		zap.String("user_id", link.UserID.String()))
	return nil
}

// GetLink получает ссылку по ID вместе с платформой и категорией
func (s *PostgresStorage) GetLink(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).
		Preload("Platform").
		Preload("Category").
		Where("id = ?", id).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		s.log.Error("failed to get link", zap.String("link_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// DeleteLink удаляет ссылку и все жалобы на нее в одной транзакции
func (s *PostgresStorage) DeleteLink(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", id).Delete(&domain.Report{}).Error; err != nil {
			return fmt.Errorf("failed to delete link reports: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&domain.Link{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete link: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrLinkNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrLinkNotFound) {
			s.log.Error("failed to delete link", zap.String("link_id", id.String()), zap.Error(err))
		}
		return err
	}

	s.log.Info("deleted link", zap.String("link_id", id.String()))
	return nil
}

// ListLinks возвращает страницу ссылок и точное количество совпадений
func (s *PostgresStorage) ListLinks(ctx context.Context, filter repository.LinkFilter, offset, limit int) ([]*domain.Link, int64, error) {
	// Фильтр применяется к двум независимым запросам: счетчику и выборке
	scoped := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&domain.Link{})
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.PlatformID != nil {
			query = query.Where("platform_id = ?", *filter.PlatformID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		s.log.Error("failed to count links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	var links []*domain.Link
	err := scoped().
		Preload("Platform").
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&links).Error
	if err != nil {
		s.log.Error("failed to list links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}

	return links, total, nil
}

// --- Report Methods ---

// SaveReport сохраняет новую жалобу
func (s *PostgresStorage) SaveReport(ctx context.Context, report *domain.Report) error {
	if report.Status == "" {
		report.Status = domain.ReportStatusPending
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrLinkNotFound
		}
		s.log.Error("failed to save report", zap.String("link_id", report.LinkID.String()), zap.Error(err))
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.log.Info("saved new report",
		zap.String("report_id", report.ID.String()),
		zap.String("link_id", report.LinkID.String()))
	return nil
}

// GetReport получает жалобу по ID
func (s *PostgresStorage) GetReport(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report

	err := s.db.WithContext(ctx).
		Preload("Link").
		Preload("User").
		Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		s.log.Error("failed to get report", zap.String("report_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

// ListReports возвращает жалобы, опционально фильтруя по статусу
func (s *PostgresStorage) ListReports(ctx context.Context, status string) ([]*domain.Report, error) {
	query := s.db.WithContext(ctx).Model(&domain.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []*domain.Report
	err := query.
		Preload("Link").
		Preload("User").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		s.log.Error("failed to list reports", zap.String("status", status), zap.Error(err))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, nil
}

// UpdateReportStatus переводит жалобу из pending в указанный статус.
// Условный UPDATE гарантирует, что финализированная жалоба не изменится.
func (s *PostgresStorage) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := s.db.WithContext(ctx).Model(&domain.Report{}).
		Where("id = ? AND status = ?", id, domain.ReportStatusPending).
		Update("status", status)
	if result.Error != nil {
		s.log.Error("failed to update report status", zap.String("report_id", id.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to update report status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Либо жалобы нет, либо она уже не pending
		var count int64
		if err := s.db.WithContext(ctx).Model(&domain.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check report existence: %w", err)
		}
		if count == 0 {
			return repository.ErrReportNotFound
		}
		return repository.ErrReportFinalized
	}

	s.log.Info("updated report status",
		zap.String("report_id", id.String()),
		zap.String("status", status))
	return nil
}

// --- Dashboard Counters ---

func (s *PostgresStorage) CountLinks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Link{}).Count(&count).Error
	if err != nil {
		s.log.Error("failed to count links", zap.Error(err))
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

func (s *PostgresStorage) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (s *PostgresStorage) CountReports(ctx context.Context, status string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		s.log.Error("failed to count reports", zap.String("status", status), zap.Error(err))
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// --- Helper Methods ---

// isUniqueViolation распознает нарушение уникального индекса
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

// isForeignKeyViolation распознает нарушение внешнего ключа
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "violates foreign key constraint")
}
