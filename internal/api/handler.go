package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Dmkdok/meal-planner/internal/layout"
	"github.com/Dmkdok/meal-planner/internal/metrics"
	"github.com/Dmkdok/meal-planner/internal/provision"
	"github.com/Dmkdok/meal-planner/internal/report"
	"github.com/Dmkdok/meal-planner/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const parameterSuggestion = "tripDays, peopleCount and layoutDaysCount must be positive integers"

const (
	defaultMaxLayoutDays = 366
	defaultMaxBodyBytes  = 1 << 20
)

// Handler wires calculator and storage dependencies into HTTP handlers.
type Handler struct {
	calculator provision.Calculator
	storage    storage.Storage
	logger     *zap.Logger

	maxLayoutDays int
	maxBodyBytes  int64

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLogger sets the logger used for calculation diagnostics.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMaxLayoutDays caps the number of rations a calculated or stored layout may have.
func WithMaxLayoutDays(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxLayoutDays = n
		}
	}
}

// WithMaxBodyBytes caps the size of JSON request bodies.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc provision.Calculator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		logger:     zap.NewNop(),

		maxLayoutDays: defaultMaxLayoutDays,
		maxBodyBytes:  defaultMaxBodyBytes,

		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListLayouts(w http.ResponseWriter, _ *http.Request) {
	layouts, err := h.storage.List()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutsResponse{Layouts: layouts})
}

func (h *Handler) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.storage.Get(r.PathValue("id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutPayload
	if !h.decodeJSON(w, r, &req, "Invalid request") {
		return
	}

	l := layout.Default(req.Name)
	if len(req.Days) > 0 {
		l.Days = req.Days
	}
	if err := h.checkLayoutDays(l.DaysCount()); err != nil {
		writeCalculationError(w, err)
		return
	}

	created, err := h.storage.Create(l)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutPayload
	if !h.decodeJSON(w, r, &req, "Invalid request") {
		return
	}
	if err := h.checkLayoutDays(len(req.Days)); err != nil {
		writeCalculationError(w, err)
		return
	}

	updated, err := h.storage.Update(layout.Layout{
		ID:   r.PathValue("id"),
		Name: req.Name,
		Days: req.Days,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Delete(r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if !h.decodeJSON(w, r, &req, "Invalid request") {
		return
	}

	calcReq := req.toProvision()
	var mealTypes [][]string
	if req.LayoutID != "" {
		l, ok := h.loadLayout(w, req.LayoutID)
		if !ok {
			return
		}
		calcReq = l.Request(req.TripDays, req.PeopleCount)
		mealTypes = l.MealTypesByDay()
	}
	if err := h.checkLayoutDays(calcReq.LayoutDaysCount); err != nil {
		writeCalculationError(w, err)
		return
	}

	start := time.Now()
	result, err := h.calculate(r.Context(), calcReq)
	elapsed := time.Since(start)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	resp := newCalculateResponse(result)
	resp.LayoutID = req.LayoutID
	resp.MealTypesByDay = mealTypes
	resp.CalculationTimeMs = elapsed.Milliseconds()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExportLayout(w http.ResponseWriter, r *http.Request) {
	tripDays, err := queryInt(r, "tripDays")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error(), parameterSuggestion)
		return
	}
	peopleCount, err := queryInt(r, "peopleCount")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error(), parameterSuggestion)
		return
	}

	l, ok := h.loadLayout(w, r.PathValue("id"))
	if !ok {
		return
	}

	result, err := h.calculate(r.Context(), l.Request(tripDays, peopleCount))
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	safeName := strings.NewReplacer("/", "-", "\\", "-").Replace(l.Name)
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": safeName + " - расчет.csv",
	})
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	if err := report.WriteCSV(w, result, l.MealTypesByDay()); err != nil {
		h.logger.Error("csv export failed",
			zap.String("layout_id", l.ID),
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.Error(err),
		)
	}
}

func (h *Handler) handleExportBackup(w http.ResponseWriter, _ *http.Request) {
	layouts, err := h.storage.List()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	now := h.clock()
	filename := fmt.Sprintf("raskladka_backup_%s.json", now.Format("20060102T150405Z"))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	writeJSON(w, http.StatusOK, backupPayload{
		Version:    backupVersion,
		ExportedAt: now,
		Layouts:    layouts,
	})
}

func (h *Handler) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	replace := true
	if raw := r.URL.Query().Get("replace"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid parameter", "replace must be a boolean")
			return
		}
		replace = parsed
	}

	var payload backupPayload
	if !h.decodeJSON(w, r, &payload, "Invalid backup") {
		return
	}
	if payload.Version != backupVersion {
		writeError(w, http.StatusBadRequest, "Invalid backup", fmt.Sprintf("unsupported backup version %d", payload.Version))
		return
	}

	for _, l := range payload.Layouts {
		if err := h.checkLayoutDays(l.DaysCount()); err != nil {
			writeCalculationError(w, fmt.Errorf("layout %q: %w", l.Name, err))
			return
		}
	}

	n, err := h.storage.Import(payload.Layouts, replace)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Imported: n,
		Replaced: replace,
		Message:  "Backup imported successfully",
	})
}

// loadLayout fetches a stored layout and checks it can be calculated, writing the error response otherwise.
func (h *Handler) loadLayout(w http.ResponseWriter, id string) (layout.Layout, bool) {
	l, err := h.storage.Get(id)
	if err != nil {
		writeStorageError(w, err)
		return layout.Layout{}, false
	}
	if err := h.checkLayoutDays(l.DaysCount()); err != nil {
		writeCalculationError(w, err)
		return layout.Layout{}, false
	}
	if err := l.Validate(); err != nil {
		switch {
		case errors.Is(err, layout.ErrNoDays), errors.Is(err, layout.ErrNoProducts):
			writeError(w, http.StatusUnprocessableEntity, "Layout cannot be calculated", err.Error(), "Add days and products to the layout")
		default:
			writeError(w, http.StatusBadRequest, "Invalid layout", err.Error())
		}
		return layout.Layout{}, false
	}
	return l, true
}

func (h *Handler) calculate(ctx context.Context, req provision.Request) (provision.Result, error) {
	start := time.Now()
	result, err := h.calculator.Calculate(req)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordCalculation(elapsed, metrics.StatusSuccess, len(result.Products))
	case errors.Is(err, provision.ErrInvalidParameter):
		metrics.RecordCalculation(elapsed, metrics.StatusInvalid, 0)
		h.logger.Debug("calculation rejected",
			zap.String("request_id", requestIDFromContext(ctx)),
			zap.Error(err),
		)
	default:
		metrics.RecordCalculation(elapsed, metrics.StatusError, 0)
		h.logger.Error("calculation failed",
			zap.String("request_id", requestIDFromContext(ctx)),
			zap.Error(err),
		)
	}
	return result, err
}

// decodeJSON reads a size-limited JSON body into dst, writing the error response on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, message string) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, message, fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, message, "unable to parse JSON payload")
		return false
	}
	return true
}

func (h *Handler) checkLayoutDays(n int) error {
	if n > h.maxLayoutDays {
		return fmt.Errorf("%w: layoutDaysCount must not exceed %d, got %d", provision.ErrInvalidParameter, h.maxLayoutDays, n)
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func writeCalculationError(w http.ResponseWriter, err error) {
	if errors.Is(err, provision.ErrInvalidParameter) {
		writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error(), parameterSuggestion)
		return
	}
	writeInternalError(w, err)
}

func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Layout not found", err.Error())
	case errors.Is(err, storage.ErrInvalidLayout):
		writeError(w, http.StatusBadRequest, "Invalid layout", err.Error())
	default:
		writeInternalError(w, err)
	}
}
