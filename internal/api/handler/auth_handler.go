package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-service/internal/api/metrics"
	"github.com/marketplace/identity-service/internal/api/middleware"
	"github.com/marketplace/identity-service/internal/core/domain"
	"github.com/marketplace/identity-service/internal/core/ports"
)

// AuthHandler exposes registration, login, and logout over HTTP.
type AuthHandler struct {
	authService  ports.AuthService
	cookieMaxAge int
}

func NewAuthHandler(authService ports.AuthService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{authService: authService, cookieMaxAge: cookieMaxAge}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ShopName string `json:"shop_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string                 `json:"message"`
	User    *domain.AccountSummary `json:"user"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration fields"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reg := domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ShopName: req.ShopName,
	}

	if err := h.authService.Register(c.Request().Context(), reg); err != nil {
		metrics.RegistrationFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(reg.Role).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func failureReason(err error) string {
	if errors.Is(err, domain.ErrDuplicateAccount) {
		return "duplicate"
	}
	return "validation"
}

// Login verifies credentials and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sid, err := middleware.EnsureSessionID(c, h.cookieMaxAge)
	if err != nil {
		return domain.ErrSessionPersistence
	}

	user, err := h.authService.Login(c.Request().Context(), sid, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	return c.JSON(http.StatusOK, loginResponse{Message: "Logged in successfully", User: user})
}

// Logout destroys the current session. Logging out without a session, or
// twice in a row, succeeds either way.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, ok := middleware.CurrentSessionID(c)
	if ok {
		removed, err := h.authService.Logout(c.Request().Context(), sid)
		if err != nil {
			return err
		}
		if removed {
			metrics.SessionsActive.Dec()
		}
	}

	if err := middleware.ClearSession(c); err != nil {
		return domain.ErrLogoutFailed
	}

	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
