package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportsHandler принимает жалобы пользователей.
type ReportsHandler struct {
	reportService *service.ReportService
	log           *zap.Logger
}

// NewReportsHandler создает новый обработчик жалоб
func NewReportsHandler(reportService *service.ReportService, log *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
		log:           log,
	}
}

// CreateReportRequest структура запроса жалобы
type CreateReportRequest struct {
	LinkID string `json:"link_id"`
	Reason string `json:"reason"`
}

// ReportInfo информация о жалобе
type ReportInfo struct {
	ID        string `json:"id"`
	LinkID    string `json:"link_id"`
	UserID    string `json:"user_id"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// CreateReport регистрирует жалобу на ссылку
//
//	@Summary		Report a link
//	@Description	Submit a report against a link with a required reason
//	@Tags			Reports
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateReportRequest	true	"Report submission"
//	@Success		201		{object}	ReportInfo			"Report created"
//	@Failure		400		{object}	map[string]string	"Invalid report"
//	@Failure		401		{object}	map[string]string	"Authentication required"
//	@Failure		404		{object}	map[string]string	"Link not found"
//	@Router			/api/reports [post]
func (h *ReportsHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid report request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	linkID, err := uuid.Parse(req.LinkID)
	if err != nil {
		writeError(w, "Invalid link id", http.StatusBadRequest)
		return
	}

	report, err := h.reportService.Submit(r.Context(), linkID, userID, req.Reason)
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err == repository.ErrLinkNotFound {
			writeError(w, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to submit report", zap.String("link_id", req.LinkID), zap.Error(err))
		writeError(w, "Failed to submit report", http.StatusInternalServerError)
		return
	}

	h.log.Info("report submitted",
		zap.String("report_id", report.ID.String()),
		zap.String("link_id", report.LinkID.String()),
		zap.String("user_id", userID.String()))
	writeJSON(w, toReportInfo(report), http.StatusCreated)
}

func toReportInfo(report *domain.Report) ReportInfo {
	return ReportInfo{
		ID:        report.ID.String(),
		LinkID:    report.LinkID.String(),
		UserID:    report.UserID.String(),
		Reason:    report.Reason,
		Status:    report.Status,
		CreatedAt: report.CreatedAt.Format(time.RFC3339),
	}
}
