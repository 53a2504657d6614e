package merge

import (
	"errors"
	"math"
	"strconv"

	"row-merger/core/dataset"
	apperrors "row-merger/core/errors"
	"row-merger/core/logger"
	"row-merger/core/reconcile"
	"row-merger/feature/merge/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for merges.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = reconcile.MergePlan{}
	return &Handler{service: service}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/merge")
	group.Post("/", h.HandleMerge)
	group.Post("/refs", h.HandleMergeRefs)
	group.Post("/plan", h.HandlePlan)
	group.Get("/score", h.HandleScore)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Get("/datasets", h.HandleListDatasets)
}

// HandleMerge merges two datasets sent inline.
// @Summary Merge Inline Datasets
// @Description Merges the rows of two datasets, grouping near-duplicates by token similarity. Returns CSV when format=csv.
// @Tags merge
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.InlineRequest true "Datasets to merge"
// @Param threshold query number false "Threshold override"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} models.Result "Merge Result"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.InlineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}
	if err := overrideThreshold(c, &req.Threshold); err != nil {
		return h.fail(c, l, "Invalid threshold", err)
	}

	res, err := h.service.MergeInline(c.Context(), req)
	if err != nil {
		return h.fail(c, l, "Inline merge failed", err)
	}

	return h.respond(c, res)
}

// HandleMergeRefs merges two datasets addressed by reference.
// @Summary Merge Referenced Datasets
// @Description Merges datasets stored as objects (s3://key) or tables (table://name), optionally saving the result.
// @Tags merge
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.RefRequest true "Dataset references"
// @Param threshold query number false "Threshold override"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} models.Result "Merge Result"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Failure 404 {object} map[string]string "Dataset Not Found"
// @Failure 502 {object} map[string]string "Source Unavailable"
// @Router /merge/refs [post]
func (h *Handler) HandleMergeRefs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.RefRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}
	if err := overrideThreshold(c, &req.Threshold); err != nil {
		return h.fail(c, l, "Invalid threshold", err)
	}

	res, err := h.service.MergeRefs(c.Context(), req)
	if err != nil {
		return h.fail(c, l, "Merge failed", err)
	}

	return h.respond(c, res)
}

// HandlePlan returns the grouping of two inline datasets.
// @Summary Plan Merge
// @Description Returns every match group with its members and scores instead of the merged rows.
// @Tags merge
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.InlineRequest true "Datasets to group"
// @Param threshold query number false "Threshold override"
// @Success 200 {object} reconcile.MergePlan "Merge Plan"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Router /merge/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.InlineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}
	if err := overrideThreshold(c, &req.Threshold); err != nil {
		return h.fail(c, l, "Invalid threshold", err)
	}

	plan, err := h.service.Plan(c.Context(), Request{
		Old:       &dataset.MemorySource{Label: "inline:old", Dataset: req.Old},
		New:       &dataset.MemorySource{Label: "inline:new", Dataset: req.New},
		Threshold: req.Threshold,
	})
	if err != nil {
		return h.fail(c, l, "Merge plan failed", err)
	}

	return c.JSON(plan)
}

// HandleScore scores two strings.
// @Summary Score Strings
// @Description Returns the token similarity (0-100) of two strings.
// @Tags merge
// @Security ApiKeyAuth
// @Produce json
// @Param a query string true "First string"
// @Param b query string true "Second string"
// @Success 200 {object} models.ScoreResponse "Score"
// @Router /merge/score [get]
func (h *Handler) HandleScore(c *fiber.Ctx) error {
	a, b := c.Query("a"), c.Query("b")
	return c.JSON(models.ScoreResponse{A: a, B: b, Score: h.service.Score(a, b)})
}

// HandleListRuns lists recent merges.
// @Summary List Merge Runs
// @Description Lists recent merge runs, newest first. Requires a configured database.
// @Tags merge
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Maximum runs to return (default 20)"
// @Success 200 {array} models.MergeRun "Merge Runs"
// @Failure 404 {object} map[string]string "History Disabled"
// @Router /merge/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", defaultListLimit))
	if err != nil {
		return h.fail(c, l, "Listing merge runs failed", err)
	}

	return c.JSON(runs)
}

// HandleGetRun returns one merge run.
// @Summary Get Merge Run
// @Description Returns a single merge run by id.
// @Tags merge
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.MergeRun "Merge Run"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Run Not Found"
// @Router /merge/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.Run(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, l, "Fetching merge run failed", err)
	}

	return c.JSON(run)
}

// HandleListDatasets lists dataset objects in the bucket.
// @Summary List Datasets
// @Description Lists CSV and TSV objects in the dataset bucket.
// @Tags merge
// @Security ApiKeyAuth
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string]interface{} "Dataset Keys"
// @Failure 502 {object} map[string]string "Storage Unavailable"
// @Router /merge/datasets [get]
func (h *Handler) HandleListDatasets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.Datasets(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, "Listing datasets failed", err)
	}

	return c.JSON(fiber.Map{
		"count":    len(keys),
		"datasets": keys,
	})
}

func (h *Handler) respond(c *fiber.Ctx, res *models.Result) error {
	if c.Query("format") != "csv" {
		return c.JSON(res)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set("X-Merge-Run-ID", res.RunID)
	return dataset.WriteCSV(c, &dataset.Dataset{Header: res.Header, Rows: res.Rows}, ',')
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrSourceUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// overrideThreshold replaces the body threshold with the threshold query parameter when present.
func overrideThreshold(c *fiber.Ctx, threshold **float64) error {
	raw := c.Query("threshold")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return apperrors.NewValidationError("threshold", "must be a number")
	}
	*threshold = &v
	return nil
}
