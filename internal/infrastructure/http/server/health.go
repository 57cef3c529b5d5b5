package server

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(db *gorm.DB, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Handle handles the health check request
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	components := []ComponentHealth{h.checkDatabase()}

	status := HealthStatusHealthy
	statusCode := fasthttp.StatusOK
	for _, c := range components {
		if !c.Healthy {
			status = HealthStatusUnhealthy
			statusCode = fasthttp.StatusServiceUnavailable
		}
	}

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)

	body, err := json.Marshal(response)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetBody(body)
}

func (h *HealthHandler) checkDatabase() ComponentHealth {
	component := ComponentHealth{Name: "database", Healthy: true}

	sqlDB, err := h.db.DB()
	if err != nil {
		component.Healthy = false
		component.Message = err.Error()
		return component
	}

	if err := sqlDB.Ping(); err != nil {
		component.Healthy = false
		component.Message = err.Error()
	}

	return component
}
