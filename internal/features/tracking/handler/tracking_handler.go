package handler

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/features/tracking/domain"
	"tracking-proxy/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for package lookups.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents a lookup failure.
type ErrorResponse struct {
	// Error is always true.
	Error bool `json:"error"`
	// Message is a machine-readable reason.
	Message string `json:"message"`
	// Original echoes the fuzzy query on no_match.
	Original string `json:"original,omitempty"`
}

// MissingTrackingResponse is returned when the tracking path segment is empty.
type MissingTrackingResponse struct {
	Error string `json:"error" example:"Tracking requerido."`
}

// FuzzyMatchResponse is returned when a fuzzy lookup finds a code.
type FuzzyMatchResponse struct {
	// Match is the code the provider accepted.
	Match string `json:"match"`
	// Original is the query, present only when Match differs from it.
	Original string `json:"original,omitempty"`
	// Data is the provider payload.
	Data json.RawMessage `json:"data" swaggertype:"object"`
}

// Register mounts the package routes. The fuzzy route must precede the exact one.
func (h *TrackingHandler) Register(router fiber.Router) {
	router.Get("/v3/package/fuzzy", h.GetPackageFuzzy)
	router.Get("/v3/package/:tracking?", h.GetPackage)
}

// GetPackage godoc
// @Summary Exact package lookup
// @Description Forwards the tracking code to the provider and returns its payload verbatim
// @Tags package
// @Produce json
// @Param tracking path string true "Tracking code"
// @Success 200 {object} object
// @Failure 400 {object} MissingTrackingResponse
// @Failure 404 {object} ErrorResponse
// @Router /v3/package/{tracking} [get]
func (h *TrackingHandler) GetPackage(c *fiber.Ctx) error {
	// Params and Query alias fasthttp buffers; codes outlive the request in the cache.
	raw := strings.Clone(c.Params("tracking"))
	tracking, err := url.PathUnescape(raw)
	if err != nil {
		tracking = raw
	}

	result, err := h.trackingService.Lookup(c.UserContext(), tracking)
	if err != nil {
		if errors.Is(err, service.ErrMissingTracking) {
			return c.Status(fiber.StatusBadRequest).JSON(MissingTrackingResponse{
				Error: "Tracking requerido.",
			})
		}
		return h.internalError(c, err)
	}

	if !result.OK() {
		failure := result.Failure()
		return c.Status(failureStatus(failure)).JSON(ErrorResponse{
			Error:   true,
			Message: failureMessage(failure),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(result.Payload())
}

// GetPackageFuzzy godoc
// @Summary Fuzzy package lookup
// @Description Tries the query, then near-miss variants of it, returning the first match
// @Tags package
// @Produce json
// @Param q query string true "Tracking code, possibly mistyped"
// @Success 200 {object} FuzzyMatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v3/package/fuzzy [get]
func (h *TrackingHandler) GetPackageFuzzy(c *fiber.Ctx) error {
	result, err := h.trackingService.Resolve(c.UserContext(), strings.Clone(c.Query("q")))
	if err != nil {
		if errors.Is(err, service.ErrMissingQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   true,
				Message: "missing_query",
			})
		}
		return h.internalError(c, err)
	}

	if !result.Found() {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:    true,
			Message:  "no_match",
			Original: result.OriginalCode,
		})
	}

	resp := FuzzyMatchResponse{
		Match: result.MatchedCode,
		Data:  result.Payload,
	}
	if !result.Exact() {
		resp.Original = result.OriginalCode
	}
	return c.JSON(resp)
}

func (h *TrackingHandler) internalError(c *fiber.Ctx, err error) error {
	rayID, _ := c.Locals("requestid").(string)
	logger.Get().Error("Package lookup failed",
		zap.String("path", c.Path()),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   true,
		Message: "internal_error",
	})
}

// failureStatus keeps the upstream status when there is one, 404 otherwise.
func failureStatus(f domain.Failure) int {
	if f.Reason == domain.FailureHTTPStatus && f.StatusCode != 0 {
		return f.StatusCode
	}
	return fiber.StatusNotFound
}

func failureMessage(f domain.Failure) string {
	if f.Message != "" {
		return f.Message
	}
	return "not_found"
}
