package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ai-grocery-list/internal/grocery"
	"ai-grocery-list/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	defaultUsageDays = 7
)

// GroceryGenerator produces a grocery list for a meal plan.
type GroceryGenerator interface {
	Generate(ctx context.Context, plan grocery.MealPlan) (*grocery.Result, error)
}

// UsageReader reports daily model token usage.
type UsageReader interface {
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Handler serves the grocery list API.
type Handler struct {
	generator GroceryGenerator
	repo      grocery.Repository
	usage     UsageReader
	dbPath    string
	logger    *zap.Logger
}

// NewHandler creates a Handler. usage may be nil when metrics are not
// persisted; dbPath is empty for in-memory storage.
func NewHandler(generator GroceryGenerator, repo grocery.Repository, usage UsageReader, dbPath string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		generator: generator,
		repo:      repo,
		usage:     usage,
		dbPath:    dbPath,
		logger:    logger,
	}
}

// GenerateGroceryList handles POST /api/generate-grocery-list.
func (h *Handler) GenerateGroceryList(c *gin.Context) {
	var plan grocery.MealPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		h.fail(c, http.StatusBadRequest, ErrorInvalidMealPlan, "Invalid meal plan: "+err.Error())
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), plan)
	if err != nil {
		h.failGeneration(c, err)
		return
	}

	c.JSON(http.StatusOK, result.GroceryList)
}

func (h *Handler) failGeneration(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, grocery.ErrInvalidMealPlan):
		h.fail(c, http.StatusBadRequest, ErrorInvalidMealPlan, validationMessage(err))
	case errors.Is(err, grocery.ErrUpstream):
		h.logger.Error("model call failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		h.fail(c, http.StatusInternalServerError, ErrorUpstream, "Failed to generate grocery list")
	case errors.Is(err, grocery.ErrInvalidCompletion):
		h.logger.Error("invalid completion", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		h.fail(c, http.StatusInternalServerError, ErrorInvalidCompletion, "Invalid grocery list format received")
	default:
		h.logger.Error("generate grocery list failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		h.fail(c, http.StatusInternalServerError, ErrorInternalError, "Internal server error")
	}
}

// validationMessage strips the error kind prefix, e.g.
// "invalid meal plan: please provide at least one meal" -> "Please provide at least one meal".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), grocery.ErrInvalidMealPlan.Error()+": ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// GetGroceryList handles GET /api/grocery-lists/:id.
func (h *Handler) GetGroceryList(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, http.StatusBadRequest, ErrorBadRequest, "id must be a positive integer")
		return
	}

	rec, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to load grocery list", zap.Int64("id", id), zap.Error(err))
		h.fail(c, http.StatusInternalServerError, ErrorInternalError, "Internal server error")
		return
	}
	if rec == nil {
		h.fail(c, http.StatusNotFound, ErrorNotFound, "Grocery list not found")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ListGroceryLists handles GET /api/grocery-lists.
func (h *Handler) ListGroceryLists(c *gin.Context) {
	limit, ok := h.intQuery(c, "limit", defaultListLimit)
	if !ok {
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list grocery lists", zap.Error(err))
		h.fail(c, http.StatusInternalServerError, ErrorInternalError, "Internal server error")
		return
	}
	if records == nil {
		records = []grocery.Record{}
	}

	c.JSON(http.StatusOK, gin.H{"grocery_lists": records})
}

// GetUsage handles GET /api/metrics/usage.
func (h *Handler) GetUsage(c *gin.Context) {
	days, ok := h.intQuery(c, "days", defaultUsageDays)
	if !ok {
		return
	}
	if h.usage == nil {
		c.JSON(http.StatusOK, gin.H{"days": days, "usage": []metrics.DailyUsage{}})
		return
	}

	usage, err := h.usage.GetDailyUsage(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("failed to read usage", zap.Error(err))
		h.fail(c, http.StatusInternalServerError, ErrorInternalError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "usage": usage})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"system": metrics.GetSysHealth(h.dbPath),
	})
}

func (h *Handler) intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		h.fail(c, http.StatusBadRequest, ErrorBadRequest, key+" must be a positive integer")
		return 0, false
	}
	return n, true
}

func (h *Handler) fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Code: code})
}
