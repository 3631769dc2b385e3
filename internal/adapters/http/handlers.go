package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// Client facing error messages
const (
	MsgInvalidDataType    = "Invalid data type"
	MsgItemNotFound       = "Item not found"
	MsgInvalidItem        = "Invalid item data"
	MsgNoFileUploaded     = "No file uploaded"
	MsgInvalidCredentials = "Invalid credentials"
	MsgSaveFailed         = "Failed to save data"
)

// httpError maps a service error to the HTTP error returned to the client.
// Storage failures are logged here and reported with a generic message.
func httpError(log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidEntityType):
		return echo.NewHTTPError(http.StatusNotFound, MsgInvalidDataType)
	case errors.Is(err, entities.ErrItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgItemNotFound)
	case errors.Is(err, entities.ErrInvalidItem):
		resp := ports.ErrorResponse{Error: MsgInvalidItem}
		if details := strings.TrimPrefix(err.Error(), entities.ErrInvalidItem.Error()); details != "" {
			resp.Details = strings.TrimPrefix(details, ": ")
		}
		return echo.NewHTTPError(http.StatusBadRequest, resp)
	case errors.Is(err, entities.ErrNoFile):
		return echo.NewHTTPError(http.StatusBadRequest, MsgNoFileUploaded)
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
	}

	log.WithError(err).Error("Request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, MsgSaveFailed).SetInternal(err)
}

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Admin login
// @Description Exchange the admin credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			h.logger.LogSecurityEvent("login_failed", c.RealIP(), map[string]interface{}{
				"email": req.Email,
			})
		}
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, response)
}

// SettingsHandler handles the site settings routes
type SettingsHandler struct {
	settingsService ports.SettingsService
	logger          *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService ports.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings godoc
// @Summary Get site settings
// @Tags settings
// @Produce json
// @Success 200 {object} entities.Settings
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update site settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ports.UpdateSettingsRequest true "Settings fields"
// @Success 200 {object} entities.Settings
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req ports.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	settings, err := h.settingsService.Update(c.Request().Context(), req)
	if err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, settings)
}
