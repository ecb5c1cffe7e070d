package auth

import (
	"LinkHub-Backend/internal/repository"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandlers обработчики аутентификации
type AuthHandlers struct {
	storage         repository.Storage
	jwtService      *JWTService
	passwordService *PasswordService
	log             *zap.Logger
}

// NewAuthHandlers создает новые обработчики аутентификации
func NewAuthHandlers(storage repository.Storage, jwtService *JWTService, passwordService *PasswordService, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		storage:         storage,
		jwtService:      jwtService,
		passwordService: passwordService,
		log:             log,
	}
}

// RegisterRequest структура запроса регистрации
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse структура ответа аутентификации
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserInfo `json:"user"`
}

// UserInfo информация о пользователе
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// ErrorResponse структура ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register обработчик регистрации
//
//	@Summary		Register a new user
//	@Description	Create a new user account
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	AuthResponse	"User registered successfully"
//	@Failure		400		{object}	ErrorResponse	"Invalid request data"
//	@Failure		409		{object}	ErrorResponse	"User already exists"
//	@Router			/api/auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid registration request", zap.Error(err))
		h.writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// Валидация email
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !isValidEmail(req.Email) {
		h.writeError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	// Валидация пароля до обращения к хранилищу
	if err := IsValidPassword(req.Password); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Хешируем пароль
	hashedPassword, err := h.passwordService.HashPassword(req.Password)
	if err != nil {
		h.log.Error("failed to hash password", zap.Error(err))
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Создаем пользователя
	user, err := h.storage.CreateUser(r.Context(), req.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			h.writeError(w, "User with this email already exists", http.StatusConflict)
			return
		}
		h.log.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		h.writeError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	// Генерируем токены
	accessToken, refreshToken, ok := h.issueTokens(w, user.ID, user.Email)
	if !ok {
		return
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserInfo{
			ID:    user.ID.String(),
			Email: user.Email,
		},
	}

	h.log.Info("user registered successfully", zap.String("user_id", user.ID.String()), zap.String("email", req.Email))
	h.writeJSON(w, response, http.StatusCreated)
}

// Login обработчик входа
//
//	@Summary		Login user
//	@Description	Authenticate user and receive JWT tokens
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	AuthResponse	"Login successful"
//	@Failure		400		{object}	ErrorResponse	"Invalid request data"
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Router			/api/auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid login request", zap.Error(err))
		h.writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// Нормализуем email
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Находим пользователя
	user, err := h.storage.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Debug("user not found for login", zap.String("email", req.Email))
		h.writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Проверяем пароль
	if err := h.passwordService.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.log.Debug("invalid password for user", zap.String("email", req.Email))
		h.writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Обновляем время последнего входа
	now := time.Now()
	user.LastLoginAt = &now
	if err := h.storage.UpdateUser(r.Context(), user); err != nil {
		h.log.Warn("failed to update last login time", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	accessToken, refreshToken, ok := h.issueTokens(w, user.ID, user.Email)
	if !ok {
		return
	}

	// Признак администратора определяется по admin_roles, не по токену
	isAdmin, err := h.storage.IsAdmin(r.Context(), user.ID)
	if err != nil {
		h.log.Warn("failed to resolve admin membership on login", zap.String("user_id", user.ID.String()), zap.Error(err))
		isAdmin = false
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserInfo{
			ID:      user.ID.String(),
			Email:   user.Email,
			IsAdmin: isAdmin,
		},
	}

	h.log.Info("user logged in successfully", zap.String("user_id", user.ID.String()), zap.String("email", req.Email))
	h.writeJSON(w, response, http.StatusOK)
}

// Logout обработчик выхода. Токены не хранятся на сервере, поэтому
// выход служит подтверждением, что клиент может удалить свои токены.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		h.log.Info("user logged out", zap.String("user_id", userID.String()))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает текущего пользователя и его признак администратора
//
//	@Summary		Current user
//	@Description	Return the authenticated user with the admin flag
//	@Tags			Authentication
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserInfo	"Current user"
//	@Failure		401	{object}	ErrorResponse	"Authentication required"
//	@Router			/api/auth/me [get]
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.storage.GetUserByID(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to get current user", zap.String("user_id", userID.String()), zap.Error(err))
		h.writeError(w, "Failed to retrieve user", http.StatusInternalServerError)
		return
	}

	isAdmin, err := h.storage.IsAdmin(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to resolve admin membership", zap.String("user_id", userID.String()), zap.Error(err))
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, UserInfo{
		ID:      user.ID.String(),
		Email:   user.Email,
		IsAdmin: isAdmin,
	}, http.StatusOK)
}

// Helper methods

func (h *AuthHandlers) issueTokens(w http.ResponseWriter, userID uuid.UUID, email string) (string, string, bool) {
	accessToken, err := h.jwtService.GenerateAccessToken(userID, email)
	if err != nil {
		h.log.Error("failed to generate access token", zap.Error(err))
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
		return "", "", false
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(userID, email)
	if err != nil {
		h.log.Error("failed to generate refresh token", zap.Error(err))
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
		return "", "", false
	}

	return accessToken, refreshToken, true
}

func (h *AuthHandlers) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AuthHandlers) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func isValidEmail(email string) bool {
	// Простая валидация email
	return strings.Contains(email, "@") && len(email) > 3 && len(email) < 255
}
