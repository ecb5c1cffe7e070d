package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/gate"
	"LinkHub-Backend/internal/repository/memory"
	"LinkHub-Backend/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	handler  http.Handler
	store    *memory.MemStorage
	jwt      *auth.JWTService
	password *auth.PasswordService
	category *domain.Category
	telegram *domain.Platform
	whatsapp *domain.Platform
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	log := zap.NewNop()

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:            []byte("test-secret"),
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "LinkHub-Test",
	})
	passwordService := auth.NewPasswordServiceWithCost(bcrypt.MinCost)

	clickGate, err := gate.New(&config.Gate{
		Strategy:        "redirect",
		InterstitialURL: "https://ads.example.com/interstitial",
	}, log)
	require.NoError(t, err)

	listingCfg := &config.Listing{PageSize: 20}

	server := NewServer(
		store,
		service.NewLinkService(store),
		service.NewReportService(store),
		service.NewAdminService(store),
		clickGate,
		jwtService,
		passwordService,
		listingCfg,
		log,
	)

	return &testEnv{
		handler:  server.SetupRoutes(),
		store:    store,
		jwt:      jwtService,
		password: passwordService,
		category: store.AddCategory(&domain.Category{Name: "Tecnología"}),
		telegram: store.AddPlatform(&domain.Platform{Name: domain.PlatformTelegram}),
		whatsapp: store.AddPlatform(&domain.Platform{Name: domain.PlatformWhatsApp}),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, admin bool) (*domain.User, string) {
	t.Helper()

	hash, err := e.password.HashPassword("Password1")
	require.NoError(t, err)
	user, err := e.store.CreateUser(context.Background(), email, hash)
	require.NoError(t, err)

	if admin {
		require.NoError(t, e.store.AddAdminRole(context.Background(), user.ID))
	}

	token, err := e.jwt.GenerateAccessToken(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) addLink(t *testing.T, title string) *domain.Link {
	t.Helper()
	link := &domain.Link{
		Title:       title,
		Description: "Test group",
		URL:         "https://t.me/" + uuid.NewString()[:8],
		PlatformID:  e.telegram.ID,
		CategoryID:  e.category.ID,
		UserID:      uuid.New(),
	}
	require.NoError(t, e.store.SaveLink(context.Background(), link))
	return link
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// --- Auth ---

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "User@Example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered auth.AuthResponse
	decode(t, rec, &registered)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "user@example.com", registered.User.Email)

	rec = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	env := setupTestServer(t)

	cases := []string{"Ab1", "password1", "PASSWORD", "Passwordd"}
	for _, password := range cases {
		rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "user@example.com",
			"password": password,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "password %q", password)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestServer(t)
	env.createUser(t, "user@example.com", false)

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"password": "Password1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMeReturnsAdminFlag(t *testing.T) {
	env := setupTestServer(t)
	_, userToken := env.createUser(t, "user@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	var me auth.UserInfo
	rec := env.do(http.MethodGet, "/api/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &me)
	assert.False(t, me.IsAdmin)

	rec = env.do(http.MethodGet, "/api/auth/me", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &me)
	assert.True(t, me.IsAdmin)
}

// --- Catalog ---

func TestListCategoriesAndPlatforms(t *testing.T) {
	env := setupTestServer(t)

	var categories []CategoryInfo
	rec := env.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "Tecnología", categories[0].Name)

	var platforms []PlatformInfo
	rec = env.do(http.MethodGet, "/api/platforms", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &platforms)
	assert.Len(t, platforms, 2)
}

func TestGetCategory(t *testing.T) {
	env := setupTestServer(t)

	var info CategoryInfo
	rec := env.do(http.MethodGet, "/api/categories/"+env.category.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &info)
	assert.Equal(t, env.category.ID.String(), info.ID)
	assert.Equal(t, "Tecnología", info.Name)

	rec = env.do(http.MethodGet, "/api/categories/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/categories/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Links ---

func TestListLinksPagination(t *testing.T) {
	env := setupTestServer(t)
	for i := 0; i < 25; i++ {
		env.addLink(t, fmt.Sprintf("Group %d", i))
	}

	var page ListLinksResponse
	rec := env.do(http.MethodGet, "/api/links?category_id="+env.category.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	assert.Len(t, page.Links, 20)
	assert.Equal(t, int64(25), page.Total)
	assert.True(t, page.HasMore)

	rec = env.do(http.MethodGet, "/api/links?category_id="+env.category.ID.String()+"&page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	assert.Len(t, page.Links, 5)
	assert.False(t, page.HasMore)
}

func TestListLinksScopeIsExclusive(t *testing.T) {
	env := setupTestServer(t)

	path := fmt.Sprintf("/api/links?category_id=%s&platform_id=%s",
		env.category.ID, env.telegram.ID)
	rec := env.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLink(t *testing.T) {
	env := setupTestServer(t)
	_, token := env.createUser(t, "user@example.com", false)

	body := map[string]string{
		"title":       "Grupo de Go",
		"description": "Comunidad de programadores",
		"url":         "https://t.me/golangchat",
		"platform_id": env.telegram.ID.String(),
		"category_id": env.category.ID.String(),
	}

	// Без токена публикация запрещена
	rec := env.do(http.MethodPost, "/api/links", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/links", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created LinkInfo
	decode(t, rec, &created)
	assert.Equal(t, "Grupo de Go", created.Title)
	assert.NotEmpty(t, created.ID)
}

func TestCreateLinkPlatformURLMismatch(t *testing.T) {
	env := setupTestServer(t)
	_, token := env.createUser(t, "user@example.com", false)

	rec := env.do(http.MethodPost, "/api/links", token, map[string]string{
		"title":       "Grupo",
		"description": "Descripción",
		"url":         "https://example.com/group",
		"platform_id": env.whatsapp.ID.String(),
		"category_id": env.category.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- First-click gate ---

func TestOpenLinkGatesFirstClick(t *testing.T) {
	env := setupTestServer(t)
	link := env.addLink(t, "Grupo de Go")

	rec := env.do(http.MethodGet, "/api/links/"+link.ID.String()+"/open", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome gate.Outcome
	decode(t, rec, &outcome)
	assert.Equal(t, gate.ActionRedirect, outcome.Action)
	assert.Equal(t, "https://ads.example.com/interstitial", outcome.Target)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Повторный клик с cookie идет напрямую
	req := httptest.NewRequest(http.MethodGet, "/api/links/"+link.ID.String()+"/open", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	second := httptest.NewRecorder()
	env.handler.ServeHTTP(second, req)
	require.Equal(t, http.StatusOK, second.Code)

	decode(t, second, &outcome)
	assert.Equal(t, gate.ActionDirect, outcome.Action)
	assert.Equal(t, link.URL, outcome.Target)
}

func TestOpenLinkNotFound(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(http.MethodGet, "/api/links/"+uuid.NewString()+"/open", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Reports ---

func TestCreateReport(t *testing.T) {
	env := setupTestServer(t)
	_, token := env.createUser(t, "user@example.com", false)
	link := env.addLink(t, "Grupo de Go")

	rec := env.do(http.MethodPost, "/api/reports", token, map[string]string{
		"link_id": link.ID.String(),
		"reason":  "contenido inapropiado",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var report ReportInfo
	decode(t, rec, &report)
	assert.Equal(t, domain.ReportStatusPending, report.Status)

	// Пустая причина не принимается
	rec = env.do(http.MethodPost, "/api/reports", token, map[string]string{
		"link_id": link.ID.String(),
		"reason":  "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Без аутентификации жалоба не принимается
	rec = env.do(http.MethodPost, "/api/reports", "", map[string]string{
		"link_id": link.ID.String(),
		"reason":  "spam",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- Admin ---

func TestAdminAccessControl(t *testing.T) {
	env := setupTestServer(t)
	_, userToken := env.createUser(t, "user@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	rec := env.do(http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/admin/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminDemotionTakesEffectImmediately(t *testing.T) {
	env := setupTestServer(t)
	admin, adminToken := env.createUser(t, "admin@example.com", true)

	rec := env.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Роль проверяется по admin_roles на каждом запросе: после снятия
	// роли тот же токен больше не дает доступа
	require.NoError(t, env.store.RemoveAdminRole(context.Background(), admin.ID))

	rec = env.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminModeratesReports(t *testing.T) {
	env := setupTestServer(t)
	_, adminToken := env.createUser(t, "admin@example.com", true)
	link := env.addLink(t, "Grupo de Go")

	report := &domain.Report{LinkID: link.ID, UserID: uuid.New(), Reason: "spam"}
	require.NoError(t, env.store.SaveReport(context.Background(), report))

	var reports []ReportInfo
	rec := env.do(http.MethodGet, "/api/admin/reports", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &reports)
	require.Len(t, reports, 1)

	rec = env.do(http.MethodPost, "/api/admin/reports/"+report.ID.String()+"/approve", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Повторное действие над закрытой жалобой отклоняется
	rec = env.do(http.MethodPost, "/api/admin/reports/"+report.ID.String()+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// По умолчанию список показывает только pending
	rec = env.do(http.MethodGet, "/api/admin/reports", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &reports)
	assert.Empty(t, reports)
}

func TestAdminDeletesReportedLink(t *testing.T) {
	env := setupTestServer(t)
	_, adminToken := env.createUser(t, "admin@example.com", true)
	link := env.addLink(t, "Grupo de Go")

	report := &domain.Report{LinkID: link.ID, UserID: uuid.New(), Reason: "estafa"}
	require.NoError(t, env.store.SaveReport(context.Background(), report))

	rec := env.do(http.MethodDelete, "/api/admin/reports/"+report.ID.String()+"/link", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Ссылка и жалобы на нее исчезают вместе
	rec = env.do(http.MethodGet, "/api/links/"+link.ID.String()+"/open", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var reports []ReportInfo
	rec = env.do(http.MethodGet, "/api/admin/reports?status=all", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &reports)
	assert.Empty(t, reports)
}

func TestAdminPromoteDemoteUser(t *testing.T) {
	env := setupTestServer(t)
	user, _ := env.createUser(t, "user@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	rec := env.do(http.MethodPost, "/api/admin/users/"+user.ID.String()+"/promote", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var users []AdminUserInfo
	rec = env.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &users)

	promoted := false
	for _, u := range users {
		if u.ID == user.ID.String() {
			promoted = u.IsAdmin
		}
	}
	assert.True(t, promoted)

	rec = env.do(http.MethodPost, "/api/admin/users/"+user.ID.String()+"/demote", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminDeleteUserNotAvailable(t *testing.T) {
	env := setupTestServer(t)
	user, _ := env.createUser(t, "user@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	rec := env.do(http.MethodDelete, "/api/admin/users/"+user.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestAdminDashboardCounters(t *testing.T) {
	env := setupTestServer(t)
	_, adminToken := env.createUser(t, "admin@example.com", true)
	link := env.addLink(t, "Grupo de Go")

	report := &domain.Report{LinkID: link.ID, UserID: uuid.New(), Reason: "spam"}
	require.NoError(t, env.store.SaveReport(context.Background(), report))

	var dashboard DashboardResponse
	rec := env.do(http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &dashboard)

	assert.Equal(t, int64(1), dashboard.TotalLinks)
	assert.Equal(t, int64(1), dashboard.TotalUsers)
	assert.Equal(t, int64(1), dashboard.TotalReports)
	assert.Equal(t, int64(1), dashboard.PendingReports)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	decode(t, rec, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.DatabaseStatus)
}
