package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
	"github.com/andreprog02/saas-gestao-financeira/internal/platform/config"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService portssvc.AuthorizationSvc
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthorizationSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: as,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the public token route.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, authService portssvc.AuthorizationSvc) {
	h := NewAuthHandler(authService, cfg)

	// Token issuance is tightly rate limited per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/token", limitMiddleware, h.IssueToken)
	}
}

// IssueToken godoc
// @Summary Issue an operator token
// @Description Verifies the administrative secret and returns a JWT for the given operator.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.TokenRequest true "Token request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if _, err := h.authService.GrantAdmin(c.Request.Context(), req.AdminSecret, req.UserID); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid administrative secret"})
		return
	}

	claims := jwt.RegisteredClaims{
		Issuer:    h.jwtIssuer,
		Subject:   req.UserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtDuration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: tsignedString})
}
