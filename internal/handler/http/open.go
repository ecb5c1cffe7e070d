package http

import (
	"LinkHub-Backend/internal/gate"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/pkg/useragent"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenHandler проводит клик по ссылке через шлюз первого клика.
type OpenHandler struct {
	storage  repository.Storage
	gate     *gate.Gate
	uaParser *useragent.Parser
	log      *zap.Logger
}

// NewOpenHandler создает новый обработчик открытия ссылок
func NewOpenHandler(storage repository.Storage, clickGate *gate.Gate, uaParser *useragent.Parser, log *zap.Logger) *OpenHandler {
	return &OpenHandler{
		storage:  storage,
		gate:     clickGate,
		uaParser: uaParser,
		log:      log,
	}
}

// Open решает, как открыть ссылку: напрямую или через рекламный шаг
//
//	@Summary		Open a link
//	@Description	Resolve a click through the one-time interstitial gate
//	@Tags			Links
//	@Produce		json
//	@Param			id	path		string	true	"Link id"
//	@Success		200	{object}	gate.Outcome		"Click outcome"
//	@Failure		404	{object}	map[string]string	"Link not found"
//	@Router			/api/links/{id}/open [get]
func (h *OpenHandler) Open(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, "Invalid link id", http.StatusBadRequest)
		return
	}

	link, err := h.storage.GetLink(r.Context(), id)
	if err != nil {
		if err == repository.ErrLinkNotFound {
			writeError(w, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get link for open", zap.String("link_id", rawID), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	outcome := h.gate.Open(w, r, link)

	device := h.uaParser.Parse(r.UserAgent())
	h.log.Info("link opened",
		zap.String("link_id", link.ID.String()),
		zap.String("action", string(outcome.Action)),
		zap.String("device_type", device.DeviceType),
		zap.String("browser", device.Browser),
		zap.String("os", device.OS))

	writeJSON(w, outcome, http.StatusOK)
}
