package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/user-directory/internal/dto"
	"github.com/noah-isme/user-directory/internal/middleware"
	"github.com/noah-isme/user-directory/internal/models"
	appErrors "github.com/noah-isme/user-directory/pkg/errors"
	"github.com/noah-isme/user-directory/pkg/response"
)

type directoryService interface {
	View(ctx context.Context, state models.ViewState) (*models.View, bool, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Countries(ctx context.Context) []string
	Status() models.SourceStatus
}

type runtimeMetrics interface {
	Snapshot() models.RuntimeMetrics
}

// DirectoryHandler exposes the user directory over HTTP.
type DirectoryHandler struct {
	service   directoryService
	metrics   runtimeMetrics
	validator *validator.Validate
}

// NewDirectoryHandler constructs a directory handler. metrics may be nil.
func NewDirectoryHandler(svc directoryService, metrics runtimeMetrics) *DirectoryHandler {
	return &DirectoryHandler{service: svc, metrics: metrics, validator: validator.New()}
}

// List godoc
// @Summary List users
// @Description Filter, sort and paginate the loaded user directory. Out-of-range pages are clamped.
// @Tags Users
// @Produce json
// @Param search query string false "Case-insensitive substring over every visible field"
// @Param gender query string false "all, male or female"
// @Param country query string false "Exact country (case-insensitive)"
// @Param sort query string false "name, email or age"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	start := time.Now()

	var query dto.ViewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	query.Normalize()
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	state, err := query.ViewState()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	view, cacheHit, err := h.service.View(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	middleware.SetMeta(c, "countries", view.Countries)
	middleware.SetMeta(c, "sort", state.SortKey.String())
	middleware.SetMeta(c, "order", state.SortDirection.String())
	meta := middleware.ExtractMeta(c)
	if _, ok := meta["processing_time_ms"]; !ok {
		meta["processing_time_ms"] = time.Since(start).Milliseconds()
	}
	response.JSON(c, http.StatusOK, view.Records, view.Pagination(), meta)
}

// Get godoc
// @Summary Get user
// @Description Detail of one user, used for the selection panel
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *DirectoryHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Countries godoc
// @Summary List countries
// @Description Distinct countries of the loaded collection, sorted
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /countries [get]
func (h *DirectoryHandler) Countries(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Countries(c.Request.Context()), nil)
}

// Status godoc
// @Summary Source status
// @Description Outcome of the record load plus runtime counters
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /status [get]
func (h *DirectoryHandler) Status(c *gin.Context) {
	payload := gin.H{"source": h.service.Status()}
	if h.metrics != nil {
		payload["runtime"] = h.metrics.Snapshot()
	}
	response.JSON(c, http.StatusOK, payload, nil)
}
