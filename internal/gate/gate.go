package gate

import (
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/domain"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Action способ открытия ссылки, который шлюз предписывает клиенту.
type Action string

const (
	// ActionDirect открыть настоящий URL без промежуточного шага
	ActionDirect Action = "direct"
	// ActionRedirect увести первый клик на внешнюю промежуточную страницу
	ActionRedirect Action = "redirect"
	// ActionModal показать модальное окно с рекламой, URL открывается
	// отдельным действием пользователя после закрытия окна
	ActionModal Action = "modal"
)

// AdPayload параметры рекламного блока для модальной стратегии.
type AdPayload struct {
	Key       string `json:"key"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ScriptURL string `json:"script_url"`
}

// Outcome результат прохождения шлюза для одного клика.
type Outcome struct {
	Action Action     `json:"action"`
	Target string     `json:"target"`
	Ad     *AdPayload `json:"ad,omitempty"`
}

// Strategy определяет, куда уводится первый клик по ссылке.
type Strategy interface {
	Divert(link *domain.Link) Outcome
}

// RedirectStrategy уводит первый клик на фиксированный внешний URL.
type RedirectStrategy struct {
	InterstitialURL string
}

func (s *RedirectStrategy) Divert(_ *domain.Link) Outcome {
	return Outcome{
		Action: ActionRedirect,
		Target: s.InterstitialURL,
	}
}

// ModalStrategy возвращает параметры рекламы для модального окна.
// Настоящий URL передается как цель, но клиент открывает его только
// после закрытия окна, автоперехода нет.
type ModalStrategy struct {
	AdKey       string
	AdScriptURL string
}

func (s *ModalStrategy) Divert(link *domain.Link) Outcome {
	return Outcome{
		Action: ActionModal,
		Target: link.URL,
		Ad: &AdPayload{
			Key:       s.AdKey,
			Format:    "iframe",
			Width:     468,
			Height:    60,
			ScriptURL: s.AdScriptURL,
		},
	}
}

// Gate одноразовый шлюз первого клика. Для каждой пары (браузер, URL)
// первый клик уводится в сторону рекламы, все последующие идут напрямую.
type Gate struct {
	strategy Strategy
	log      *zap.Logger
}

// New создает шлюз со стратегией из конфигурации.
func New(cfg *config.Gate, log *zap.Logger) (*Gate, error) {
	var strategy Strategy
	switch cfg.Strategy {
	case "redirect":
		strategy = &RedirectStrategy{InterstitialURL: cfg.InterstitialURL}
	case "modal":
		strategy = &ModalStrategy{AdKey: cfg.AdKey, AdScriptURL: cfg.AdScriptURL}
	default:
		return nil, fmt.Errorf("unknown gate strategy: %q", cfg.Strategy)
	}

	return &Gate{
		strategy: strategy,
		log:      log,
	}, nil
}

// Open решает судьбу клика по ссылке. Первый клик отмечает URL в
// клиентской карте и уводится стратегией, повторные идут напрямую.
func (g *Gate) Open(w http.ResponseWriter, r *http.Request, link *domain.Link) Outcome {
	clicked := LoadClicked(r)

	if clicked.Seen(link.URL) {
		return Outcome{
			Action: ActionDirect,
			Target: link.URL,
		}
	}

	// Отметка ставится до увода: даже если клиент не дойдет до
	// промежуточной страницы, второй клик откроет ссылку напрямую
	clicked.Mark(link.URL)
	SaveClicked(w, clicked)

	g.log.Debug("first click gated",
		zap.String("link_id", link.ID.String()),
		zap.String("url", link.URL))

	return g.strategy.Divert(link)
}
