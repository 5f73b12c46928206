package report

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tft-atlas/core/logger"
)

// Handler handles HTTP requests for run reports.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/latest", h.HandleLatest)
	group.Get("/recipes/unresolved", h.HandleUnresolvedRecipes)
}

// HandleLatest returns the summary of the most recent ingest run.
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	summary, err := h.store.LatestSummary()
	if err != nil {
		if errors.Is(err, ErrNoSummary) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no ingest run recorded yet",
			})
		}
		l.Error("Failed to load run summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleUnresolvedRecipes returns the names the last recipe merge could
// not resolve, as ready-made material for the override file.
func (h *Handler) HandleUnresolvedRecipes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	rep, err := h.store.LatestRecipeReport()
	if err != nil {
		if errors.Is(err, ErrNoSummary) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no recipe merge recorded yet",
			})
		}
		l.Error("Failed to load recipe report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"unresolved_items":      rep.UnresolvedItems,
		"unresolved_components": rep.UnresolvedComponents,
		"conflicts":             rep.Conflicts,
	})
}
