package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/gate"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"LinkHub-Backend/pkg/useragent"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server HTTP сервер с обработчиками
type Server struct {
	authHandlers   *auth.AuthHandlers
	catalogHandler *CatalogHandler
	linksHandler   *LinksHandler
	openHandler    *OpenHandler
	reportsHandler *ReportsHandler
	adminHandler   *AdminHandler
	healthHandler  *HealthHandler
	authMiddleware *auth.Middleware
	log            *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(
	storage repository.Storage,
	linkService *service.LinkService,
	reportService *service.ReportService,
	adminService *service.AdminService,
	clickGate *gate.Gate,
	jwtService *auth.JWTService,
	passwordService *auth.PasswordService,
	listingCfg *config.Listing,
	log *zap.Logger,
) *Server {
	uaParser := useragent.NewParser(log)

	return &Server{
		authHandlers:   auth.NewAuthHandlers(storage, jwtService, passwordService, log),
		catalogHandler: NewCatalogHandler(storage, log),
		linksHandler:   NewLinksHandler(storage, linkService, listingCfg, log),
		openHandler:    NewOpenHandler(storage, clickGate, uaParser, log),
		reportsHandler: NewReportsHandler(reportService, log),
		adminHandler:   NewAdminHandler(storage, linkService, reportService, adminService, log),
		healthHandler:  NewHealthHandler(storage, log),
		authMiddleware: auth.NewMiddleware(jwtService, storage, log),
		log:            log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks (без аутентификации)
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)
	mux.HandleFunc("/metrics", s.healthHandler.Metrics)

	// Swagger документация
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Auth endpoints
	mux.HandleFunc("/api/auth/register", s.withCORS(s.authHandlers.Register))
	mux.HandleFunc("/api/auth/login", s.withCORS(s.authHandlers.Login))
	mux.HandleFunc("/api/auth/logout", s.withCORS(s.authMiddleware.RequireAuth(s.authHandlers.Logout)))
	mux.HandleFunc("/api/auth/me", s.withCORS(s.authMiddleware.RequireAuth(s.authHandlers.Me)))

	// Публичные справочники
	mux.HandleFunc("/api/categories", s.withCORS(s.catalogHandler.ListCategories))
	mux.HandleFunc("/api/categories/", s.withCORS(s.handleCategoryByID))
	mux.HandleFunc("/api/platforms", s.withCORS(s.catalogHandler.ListPlatforms))

	// Каталог: чтение публичное, публикация за аутентификацией
	mux.HandleFunc("/api/links", s.withCORS(s.handleLinksAPI))
	mux.HandleFunc("/api/links/", s.withCORS(s.handleLinkByID))

	// Жалобы
	mux.HandleFunc("/api/reports", s.withCORS(s.authMiddleware.RequireAuth(s.reportsHandler.CreateReport)))

	// Панель администратора
	mux.HandleFunc("/api/admin/", s.withCORS(s.authMiddleware.RequireAdmin(s.handleAdminAPI)))

	return s.withRecovery(mux)
}

// withRecovery перехватывает паники обработчиков, отдает 500 и
// отправляет событие в Sentry (no-op при пустом DSN).
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.CurrentHub().Recover(rec)
				s.log.Error("panic in HTTP handler",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Any("panic", rec))
				writeError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleLinksAPI обрабатывает /api/links с разными HTTP методами
func (s *Server) handleLinksAPI(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.linksHandler.ListLinks(w, r)
	case http.MethodPost:
		s.authMiddleware.RequireAuth(s.linksHandler.CreateLink)(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCategoryByID обрабатывает /api/categories/{id}
func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)
	// Ожидаем ["api", "categories", "{id}"]
	if len(parts) == 3 && r.Method == http.MethodGet {
		s.catalogHandler.GetCategory(w, r, parts[2])
		return
	}
	http.NotFound(w, r)
}

// handleLinkByID обрабатывает /api/links/{id}/open
func (s *Server) handleLinkByID(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)
	// Ожидаем ["api", "links", "{id}", "open"]
	if len(parts) == 4 && parts[3] == "open" && r.Method == http.MethodGet {
		s.openHandler.Open(w, r, parts[2])
		return
	}
	http.NotFound(w, r)
}

// handleAdminAPI маршрутизирует /api/admin/* вручную
func (s *Server) handleAdminAPI(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)
	if len(parts) < 3 {
		http.NotFound(w, r)
		return
	}

	switch parts[2] {
	case "dashboard":
		if len(parts) == 3 && r.Method == http.MethodGet {
			s.adminHandler.Dashboard(w, r)
			return
		}
	case "links":
		switch {
		case len(parts) == 3 && r.Method == http.MethodGet:
			s.adminHandler.ListLinks(w, r)
			return
		case len(parts) == 4 && r.Method == http.MethodDelete:
			s.adminHandler.DeleteLink(w, r, parts[3])
			return
		}
	case "reports":
		switch {
		case len(parts) == 3 && r.Method == http.MethodGet:
			s.adminHandler.ListReports(w, r)
			return
		case len(parts) == 5 && parts[4] == "link" && r.Method == http.MethodDelete:
			s.adminHandler.DeleteReportedLink(w, r, parts[3])
			return
		case len(parts) == 5 && r.Method == http.MethodPost:
			s.adminHandler.ResolveReport(w, r, parts[3], parts[4])
			return
		}
	case "users":
		switch {
		case len(parts) == 3 && r.Method == http.MethodGet:
			s.adminHandler.ListUsers(w, r)
			return
		case len(parts) == 4 && r.Method == http.MethodDelete:
			s.adminHandler.DeleteUser(w, r, parts[3])
			return
		case len(parts) == 5 && r.Method == http.MethodPost:
			s.adminHandler.ChangeUserRole(w, r, parts[3], parts[4])
			return
		}
	}

	http.NotFound(w, r)
}

// withCORS добавляет CORS headers к обработчику
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return s.authMiddleware.CORS(handler)
}

// splitPath разбивает путь на сегменты без пустых элементов
func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
