package handler

import (
	settingsapp "github.com/invoicehub/backend/internal/application/settings"
	"github.com/gin-gonic/gin"
)

// ConfigHandler handles configuration store API endpoints
type ConfigHandler struct {
	BaseHandler
	configService *settingsapp.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService *settingsapp.ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// Get godoc
// @ID           getConfig
// @Summary      Get the application configuration
// @Description  Returns the typed settings derived from the configuration table plus the currently formatted invoice number
// @Tags         config
// @Produce      json
// @Success      200 {object} APIResponse[settingsapp.ConfigResponse]
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/config [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configService.GetConfig(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cfg)
}

// UpdateEntry godoc
// @ID           updateConfigEntry
// @Summary      Update a configuration entry
// @Description  Writes a single configuration value by title, creating the entry when absent. The running number must stay a non-negative integer.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        title path string true "Configuration entry title"
// @Param        request body settingsapp.UpdateEntryRequest true "New value"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/config/{title} [put]
func (h *ConfigHandler) UpdateEntry(c *gin.Context) {
	title := c.Param("title")
	if title == "" {
		h.BadRequest(c, "Configuration entry title is required")
		return
	}

	var req settingsapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateEntry(c.Request.Context(), title, req.Value); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}
