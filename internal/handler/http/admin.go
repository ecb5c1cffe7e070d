package http

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/listing"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler обработчики панели администратора. Все маршруты стоят
// за RequireAdmin, здесь права повторно не проверяются.
type AdminHandler struct {
	storage       repository.Storage
	linkService   *service.LinkService
	reportService *service.ReportService
	adminService  *service.AdminService
	log           *zap.Logger
}

// NewAdminHandler создает новый обработчик панели администратора
func NewAdminHandler(
	storage repository.Storage,
	linkService *service.LinkService,
	reportService *service.ReportService,
	adminService *service.AdminService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		storage:       storage,
		linkService:   linkService,
		reportService: reportService,
		adminService:  adminService,
		log:           log,
	}
}

// AdminUserInfo пользователь со значком роли для панели
type AdminUserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
	CreatedAt   string `json:"created_at"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

// DashboardResponse сводка панели администратора
type DashboardResponse struct {
	TotalLinks     int64 `json:"total_links"`
	TotalUsers     int64 `json:"total_users"`
	TotalReports   int64 `json:"total_reports"`
	PendingReports int64 `json:"pending_reports"`
}

// ListLinks возвращает ссылки для модерации. В отличие от публичного
// каталога здесь фильтры по категории и платформе независимы.
//
//	@Summary		Moderate links
//	@Description	List links with optional category and platform filters
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category_id	query		string	false	"Category filter"
//	@Param			platform_id	query		string	false	"Platform filter"
//	@Param			page		query		int		false	"Zero-based page index"
//	@Success		200			{object}	ListLinksResponse	"Links"
//	@Failure		403			{object}	map[string]string	"Admin access required"
//	@Router			/api/admin/links [get]
func (h *AdminHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	var filter repository.LinkFilter

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, "Invalid category id", http.StatusBadRequest)
			return
		}
		filter.CategoryID = &id
	}
	if raw := r.URL.Query().Get("platform_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, "Invalid platform id", http.StatusBadRequest)
			return
		}
		filter.PlatformID = &id
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

	result, err := listing.FetchPage(r.Context(), h.storage, filter, page, listing.DefaultPageSize)
	if err != nil {
		h.log.Error("failed to list links for moderation", zap.Error(err))
		writeError(w, "Failed to retrieve links", http.StatusInternalServerError)
		return
	}

	infos := make([]LinkInfo, len(result.Links))
	for i, link := range result.Links {
		infos[i] = toLinkInfo(link)
	}

	writeJSON(w, ListLinksResponse{
		Links:    infos,
		Total:    result.Total,
		Page:     page,
		PageSize: listing.DefaultPageSize,
		HasMore:  result.HasMore,
	}, http.StatusOK)
}

// DeleteLink удаляет ссылку вместе с жалобами на нее
//
//	@Summary		Delete a link
//	@Description	Delete a link and its reports
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Link id"
//	@Success		204	"Link deleted"
//	@Failure		404	{object}	map[string]string	"Link not found"
//	@Router			/api/admin/links/{id} [delete]
func (h *AdminHandler) DeleteLink(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid link id", http.StatusBadRequest)
		return
	}

	if err := h.linkService.Delete(r.Context(), id); err != nil {
		if err == repository.ErrLinkNotFound {
			writeError(w, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to delete link", zap.String("link_id", rawID), zap.Error(err))
		writeError(w, "Failed to delete link", http.StatusInternalServerError)
		return
	}

	h.log.Info("link deleted by admin", zap.String("link_id", rawID))
	w.WriteHeader(http.StatusNoContent)
}

// ListReports возвращает жалобы с фильтром по статусу
//
//	@Summary		List reports
//	@Description	List reports filtered by status, pending by default
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string	false	"all | pending | reviewed | rejected"
//	@Success		200		{array}		ReportInfo			"Reports"
//	@Failure		400		{object}	map[string]string	"Unknown status"
//	@Router			/api/admin/reports [get]
func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "":
		status = domain.ReportStatusPending
	case "all":
		status = ""
	}

	reports, err := h.reportService.List(r.Context(), status)
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("failed to list reports", zap.String("status", status), zap.Error(err))
		writeError(w, "Failed to retrieve reports", http.StatusInternalServerError)
		return
	}

	infos := make([]ReportInfo, len(reports))
	for i, report := range reports {
		infos[i] = toReportInfo(report)
	}

	writeJSON(w, infos, http.StatusOK)
}

// ResolveReport закрывает жалобу: approve помечает рассмотренной,
// reject отклоняет. Оба действия допустимы только из pending.
func (h *AdminHandler) ResolveReport(w http.ResponseWriter, r *http.Request, rawID, action string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	switch action {
	case "approve":
		err = h.reportService.Approve(r.Context(), id)
	case "reject":
		err = h.reportService.Reject(r.Context(), id)
	default:
		writeError(w, "Unknown report action", http.StatusBadRequest)
		return
	}

	if err != nil {
		switch err {
		case repository.ErrReportNotFound:
			writeError(w, "Report not found", http.StatusNotFound)
		case repository.ErrReportFinalized:
			writeError(w, "Report is already resolved", http.StatusConflict)
		default:
			h.log.Error("failed to resolve report",
				zap.String("report_id", rawID), zap.String("action", action), zap.Error(err))
			writeError(w, "Failed to resolve report", http.StatusInternalServerError)
		}
		return
	}

	h.log.Info("report resolved", zap.String("report_id", rawID), zap.String("action", action))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteReportedLink удаляет ссылку, на которую подана жалоба,
// вместе со всеми жалобами на нее.
//
//	@Summary		Delete reported link
//	@Description	Delete the link a report refers to, cascading its reports
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Report id"
//	@Success		204	"Link deleted"
//	@Failure		404	{object}	map[string]string	"Report or link not found"
//	@Router			/api/admin/reports/{id}/link [delete]
func (h *AdminHandler) DeleteReportedLink(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	report, err := h.storage.GetReport(r.Context(), id)
	if err != nil {
		if err == repository.ErrReportNotFound {
			writeError(w, "Report not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get report", zap.String("report_id", rawID), zap.Error(err))
		writeError(w, "Failed to retrieve report", http.StatusInternalServerError)
		return
	}

	if err := h.linkService.Delete(r.Context(), report.LinkID); err != nil {
		if err == repository.ErrLinkNotFound {
			writeError(w, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to delete reported link",
			zap.String("report_id", rawID),
			zap.String("link_id", report.LinkID.String()),
			zap.Error(err))
		writeError(w, "Failed to delete link", http.StatusInternalServerError)
		return
	}

	h.log.Info("reported link deleted",
		zap.String("report_id", rawID),
		zap.String("link_id", report.LinkID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers возвращает пользователей со значком роли
//
//	@Summary		List users
//	@Description	List users merged with the admin membership set
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	AdminUserInfo	"Users"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		writeError(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}

	infos := make([]AdminUserInfo, len(accounts))
	for i, account := range accounts {
		info := AdminUserInfo{
			ID:        account.User.ID.String(),
			Email:     account.User.Email,
			IsAdmin:   account.IsAdmin,
			CreatedAt: account.User.CreatedAt.Format(time.RFC3339),
		}
		if account.User.LastLoginAt != nil {
			info.LastLoginAt = account.User.LastLoginAt.Format(time.RFC3339)
		}
		infos[i] = info
	}

	writeJSON(w, infos, http.StatusOK)
}

// ChangeUserRole назначает или снимает роль администратора.
func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request, rawID, action string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	switch action {
	case "promote":
		err = h.adminService.Promote(r.Context(), id)
	case "demote":
		err = h.adminService.Demote(r.Context(), id)
	default:
		writeError(w, "Unknown user action", http.StatusBadRequest)
		return
	}

	if err != nil {
		if err == repository.ErrUserNotFound {
			writeError(w, "User not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to change user role",
			zap.String("user_id", rawID), zap.String("action", action), zap.Error(err))
		writeError(w, "Failed to change user role", http.StatusInternalServerError)
		return
	}

	h.log.Info("user role changed", zap.String("user_id", rawID), zap.String("action", action))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser всегда отвечает, что операция недоступна: для удаления
// учетных записей нужны привилегии, которых у приложения нет.
//
//	@Summary		Delete a user
//	@Description	Not available, requires elevated credentials
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path		string				true	"User id"
//	@Failure		501	{object}	map[string]string	"Not available"
//	@Router			/api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), id); err != nil {
		if err == repository.ErrNotAvailable {
			writeError(w, "User deletion is not available", http.StatusNotImplemented)
			return
		}
		h.log.Error("failed to delete user", zap.String("user_id", rawID), zap.Error(err))
		writeError(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Dashboard возвращает сводку панели администратора
//
//	@Summary		Dashboard counters
//	@Description	Return totals for links, users and reports
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DashboardResponse	"Counters"
//	@Router			/api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		h.log.Error("failed to collect dashboard stats", zap.Error(err))
		writeError(w, "Failed to collect stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, DashboardResponse{
		TotalLinks:     stats.TotalLinks,
		TotalUsers:     stats.TotalUsers,
		TotalReports:   stats.TotalReports,
		PendingReports: stats.PendingReports,
	}, http.StatusOK)
}
