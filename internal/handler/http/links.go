package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/listing"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LinksHandler обработчик каталога ссылок.
type LinksHandler struct {
	storage     repository.Storage
	linkService *service.LinkService
	listingCfg  *config.Listing
	log         *zap.Logger
}

// NewLinksHandler создает новый обработчик ссылок
func NewLinksHandler(storage repository.Storage, linkService *service.LinkService, listingCfg *config.Listing, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		storage:     storage,
		linkService: linkService,
		listingCfg:  listingCfg,
		log:         log,
	}
}

// LinkInfo информация о ссылке
type LinkInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PlatformID  string `json:"platform_id"`
	CategoryID  string `json:"category_id"`
	Platform    string `json:"platform,omitempty"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ListLinksResponse страница каталога
type ListLinksResponse struct {
	Links    []LinkInfo `json:"links"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	HasMore  bool       `json:"has_more"`
}

// CreateLinkRequest структура запроса публикации ссылки
type CreateLinkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PlatformID  string `json:"platform_id"`
	CategoryID  string `json:"category_id"`
}

// ListLinks возвращает страницу каталога для области просмотра
//
//	@Summary		List links
//	@Description	Return one page of links scoped to a category or a platform
//	@Tags			Links
//	@Produce		json
//	@Param			category_id	query		string	false	"Category scope"
//	@Param			platform_id	query		string	false	"Platform scope"
//	@Param			page		query		int		false	"Zero-based page index"
//	@Success		200			{object}	ListLinksResponse	"Page of links"
//	@Failure		400			{object}	map[string]string	"Invalid scope"
//	@Router			/api/links [get]
func (h *LinksHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseScope(w, r)
	if !ok {
		return
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, "Invalid page index", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	size := h.listingCfg.PageSize
	result, err := listing.FetchPage(r.Context(), h.storage, filter, page, size)
	if err != nil {
		// Сбой чтения каталога не отличим для клиента от пустой выдачи
		h.log.Error("failed to fetch links page", zap.Int("page", page), zap.Error(err))
		result = &listing.Page{Links: []*domain.Link{}}
	}

	infos := make([]LinkInfo, len(result.Links))
	for i, link := range result.Links {
		infos[i] = toLinkInfo(link)
	}

	writeJSON(w, ListLinksResponse{
		Links:    infos,
		Total:    result.Total,
		Page:     page,
		PageSize: size,
		HasMore:  result.HasMore,
	}, http.StatusOK)
}

// CreateLink публикует новую ссылку
//
//	@Summary		Submit a link
//	@Description	Publish a new link into the directory
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateLinkRequest	true	"Link submission"
//	@Success		201		{object}	LinkInfo			"Link created"
//	@Failure		400		{object}	map[string]string	"Invalid submission"
//	@Failure		401		{object}	map[string]string	"Authentication required"
//	@Router			/api/links [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	platformID, err := uuid.Parse(req.PlatformID)
	if err != nil && req.PlatformID != "" {
		writeError(w, "Invalid platform id", http.StatusBadRequest)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil && req.CategoryID != "" {
		writeError(w, "Invalid category id", http.StatusBadRequest)
		return
	}

	link := &domain.Link{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		PlatformID:  platformID,
		CategoryID:  categoryID,
		UserID:      userID,
	}

	if err := h.linkService.Submit(r.Context(), link); err != nil {
		if service.IsValidationError(err) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("failed to submit link", zap.String("user_id", userID.String()), zap.Error(err))
		writeError(w, "Failed to save link", http.StatusInternalServerError)
		return
	}

	h.log.Info("link submitted",
		zap.String("link_id", link.ID.String()),
		zap.String("user_id", userID.String()))
	writeJSON(w, toLinkInfo(link), http.StatusCreated)
}

// parseScope разбирает область просмотра из query параметров.
// Категория и платформа взаимоисключающие.
func (h *LinksHandler) parseScope(w http.ResponseWriter, r *http.Request) (repository.LinkFilter, bool) {
	var filter repository.LinkFilter

	rawCategory := r.URL.Query().Get("category_id")
	rawPlatform := r.URL.Query().Get("platform_id")
	if rawCategory != "" && rawPlatform != "" {
		writeError(w, "Specify either category_id or platform_id, not both", http.StatusBadRequest)
		return filter, false
	}

	if rawCategory != "" {
		id, err := uuid.Parse(rawCategory)
		if err != nil {
			writeError(w, "Invalid category id", http.StatusBadRequest)
			return filter, false
		}
		filter.CategoryID = &id
	}
	if rawPlatform != "" {
		id, err := uuid.Parse(rawPlatform)
		if err != nil {
			writeError(w, "Invalid platform id", http.StatusBadRequest)
			return filter, false
		}
		filter.PlatformID = &id
	}

	return filter, true
}

func toLinkInfo(link *domain.Link) LinkInfo {
	info := LinkInfo{
		ID:          link.ID.String(),
		Title:       link.Title,
		Description: link.Description,
		URL:         link.URL,
		PlatformID:  link.PlatformID.String(),
		CategoryID:  link.CategoryID.String(),
		CreatedAt:   link.CreatedAt.Format(time.RFC3339),
	}
	if link.Platform != nil {
		info.Platform = link.Platform.Name
	}
	if link.Category != nil {
		info.Category = link.Category.Name
	}
	return info
}
