package memory

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStorage представляет потокобезопасную реализацию Storage в памяти для тестов
// и локального запуска без базы данных.
type MemStorage struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	admins     map[uuid.UUID]time.Time
	categories map[uuid.UUID]*domain.Category
	platforms  map[uuid.UUID]*domain.Platform
	links      map[uuid.UUID]*domain.Link
	reports    map[uuid.UUID]*domain.Report
}

func New() *MemStorage {
	return &MemStorage{
		users:      make(map[uuid.UUID]*domain.User),
		admins:     make(map[uuid.UUID]time.Time),
		categories: make(map[uuid.UUID]*domain.Category),
		platforms:  make(map[uuid.UUID]*domain.Platform),
		links:      make(map[uuid.UUID]*domain.Link),
		reports:    make(map[uuid.UUID]*domain.Report),
	}
}

// --- User Methods ---

func (s *MemStorage) CreateUser(_ context.Context, email, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemStorage) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *MemStorage) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *MemStorage) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemStorage) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// --- Admin Membership Methods ---

func (s *MemStorage) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[userID]
	return ok, nil
}

func (s *MemStorage) ListAdminIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.admins))
	for id := range s.admins {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemStorage) AddAdminRole(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	s.admins[userID] = time.Now()
	return nil
}

func (s *MemStorage) RemoveAdminRole(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.admins, userID)
	return nil
}

// --- Category and Platform Methods ---

// AddCategory заполняет категорию для тестов.
func (s *MemStorage) AddCategory(category *domain.Category) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	s.categories[category.ID] = category
	return category
}

// AddPlatform заполняет платформу для тестов.
func (s *MemStorage) AddPlatform(platform *domain.Platform) *domain.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	if platform.ID == uuid.Nil {
		platform.ID = uuid.New()
	}
	s.platforms[platform.ID] = platform
	return platform
}

func (s *MemStorage) ListCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

func (s *MemStorage) GetCategory(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (s *MemStorage) ListPlatforms(_ context.Context) ([]*domain.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	platforms := make([]*domain.Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].Name < platforms[j].Name
	})
	return platforms, nil
}

func (s *MemStorage) GetPlatform(_ context.Context, id uuid.UUID) (*domain.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	platform, ok := s.platforms[id]
	if !ok {
		return nil, repository.ErrPlatformNotFound
	}
	return platform, nil
}

// --- Link Methods ---

func (s *MemStorage) SaveLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	s.links[link.ID] = link
	return nil
}

func (s *MemStorage) GetLink(_ context.Context, id uuid.UUID) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[id]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}
	return link, nil
}

func (s *MemStorage) DeleteLink(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[id]; !ok {
		return repository.ErrLinkNotFound
	}
	delete(s.links, id)
	// Жалобы на удаленную ссылку удаляются вместе с ней
	for reportID, report := range s.reports {
		if report.LinkID == id {
			delete(s.reports, reportID)
		}
	}
	return nil
}

func (s *MemStorage) ListLinks(_ context.Context, filter repository.LinkFilter, offset, limit int) ([]*domain.Link, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Link
	for _, link := range s.links {
		if filter.CategoryID != nil && link.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.PlatformID != nil && link.PlatformID != *filter.PlatformID {
			continue
		}
		matched = append(matched, link)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*domain.Link{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// --- Report Methods ---

func (s *MemStorage) SaveReport(_ context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[report.LinkID]; !ok {
		return repository.ErrLinkNotFound
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = domain.ReportStatusPending
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	s.reports[report.ID] = report
	return nil
}

func (s *MemStorage) GetReport(_ context.Context, id uuid.UUID) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	return report, nil
}

func (s *MemStorage) ListReports(_ context.Context, status string) ([]*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []*domain.Report
	for _, r := range s.reports {
		if status != "" && r.Status != status {
			continue
		}
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (s *MemStorage) UpdateReportStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return repository.ErrReportNotFound
	}
	if report.Status != domain.ReportStatusPending {
		return repository.ErrReportFinalized
	}
	report.Status = status
	return nil
}

// --- Dashboard Counters ---

func (s *MemStorage) CountLinks(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.links)), nil
}

func (s *MemStorage) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *MemStorage) CountReports(_ context.Context, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status == "" {
		return int64(len(s.reports)), nil
	}
	var count int64
	for _, r := range s.reports {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}
