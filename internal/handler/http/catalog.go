package http

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogHandler отдает справочники категорий и платформ.
type CatalogHandler struct {
	storage repository.Storage
	log     *zap.Logger
}

// NewCatalogHandler создает новый обработчик справочников
func NewCatalogHandler(storage repository.Storage, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		storage: storage,
		log:     log,
	}
}

// CategoryInfo информация о категории
type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlatformInfo информация о платформе
type PlatformInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCategories возвращает все категории по имени
//
//	@Summary		List categories
//	@Description	Return all link categories ordered by name
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	CategoryInfo	"Categories"
//	@Router			/api/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.storage.ListCategories(r.Context())
	if err != nil {
		// Публичный каталог не показывает сбои: пустой список и лог
		h.log.Error("failed to list categories", zap.Error(err))
		categories = []*domain.Category{}
	}

	infos := make([]CategoryInfo, len(categories))
	for i, c := range categories {
		infos[i] = CategoryInfo{ID: c.ID.String(), Name: c.Name}
	}

	writeJSON(w, infos, http.StatusOK)
}

// GetCategory возвращает категорию по ID
//
//	@Summary		Get category
//	@Description	Return a single category by its ID
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string			true	"Category ID"
//	@Success		200	{object}	CategoryInfo	"Category"
//	@Failure		400	{object}	map[string]string	"Invalid category ID"
//	@Failure		404	{object}	map[string]string	"Category not found"
//	@Router			/api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	category, err := h.storage.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			writeError(w, "Category not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get category", zap.String("category_id", id.String()), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, CategoryInfo{ID: category.ID.String(), Name: category.Name}, http.StatusOK)
}

// ListPlatforms возвращает все платформы
//
//	@Summary		List platforms
//	@Description	Return the fixed set of messaging platforms
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	PlatformInfo	"Platforms"
//	@Router			/api/platforms [get]
func (h *CatalogHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.storage.ListPlatforms(r.Context())
	if err != nil {
		h.log.Error("failed to list platforms", zap.Error(err))
		platforms = []*domain.Platform{}
	}

	infos := make([]PlatformInfo, len(platforms))
	for i, p := range platforms {
		infos[i] = PlatformInfo{ID: p.ID.String(), Name: p.Name}
	}

	writeJSON(w, infos, http.StatusOK)
}
