package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	defaultYear int
	engines     map[int]*calculator.Engine
	responses   *cache.Cache
	cacheTTL    time.Duration
	limiter     *rate.Limiter
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// params are the parameters of the default fiscal year, overrides included;
// the other supported years use their built-in values.
func NewHandler(logger *zap.Logger, cfg *Config, params legal.Parameters, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxBodySize := cfg.BodySizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		defaultYear: params.Year,
		engines:     make(map[int]*calculator.Engine),
		cacheTTL:    cfg.CacheDuration(),
	}

	for _, year := range legal.Years() {
		yearParams, err := legal.ForYear(year)
		if err != nil {
			continue
		}
		h.engines[year] = calculator.NewEngine(logger, yearParams)
	}
	h.engines[params.Year] = calculator.NewEngine(logger, params)

	if h.cacheTTL > 0 {
		h.responses = cache.New(h.cacheTTL, 2*h.cacheTTL)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	mux := http.NewServeMux()

	// Single calculation, JSON input
	mux.HandleFunc("POST /api/calculate/{type}", h.handleCalculate)

	// Whole configuration file upload, every calculation in it
	mux.HandleFunc("POST /api/run", h.handleRun)

	mux.HandleFunc("GET /api/calculators", h.handleCalculators)
	mux.HandleFunc("GET /api/parameters", h.handleParameters)

	// Version endpoint for client metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	return h.withRequestID(h.withRateLimit(mux))
}

type calculateResponse struct {
	Type       calculator.Type `json:"type"`
	FiscalYear int             `json:"fiscalYear"`
	Result     interface{}     `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	kind := r.PathValue("type")
	if !calculator.Known(kind) {
		h.respondErrorWithOp(w, r, http.StatusNotFound, fmt.Sprintf("unknown calculation type %q", kind), op)
		return
	}

	year, engine, err := h.engineFor(r.URL.Query().Get("year"))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("malformed JSON: %v", err), op)
		return
	}

	key := fmt.Sprintf("%d|%s|%s", year, strings.ToLower(strings.TrimSpace(kind)), compact.String())
	if h.responses != nil {
		if cached, found := h.responses.Get(key); found {
			w.Header().Set("X-Cache", "HIT")
			h.writeRaw(w, http.StatusOK, cached.([]byte))
			return
		}
	}

	var params map[string]interface{}
	if err := json.Unmarshal(compact.Bytes(), &params); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "request body must be a JSON object", op)
		return
	}

	value, err := engine.Calculate(kind, params)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}

	payload, err := json.Marshal(calculateResponse{
		Type:       calculator.Type(strings.ToLower(strings.TrimSpace(kind))),
		FiscalYear: year,
		Result:     value,
	})
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), op)
		return
	}

	if h.responses != nil {
		h.responses.Set(key, payload, cache.DefaultExpiration)
		w.Header().Set("X-Cache", "MISS")
	}
	h.writeRaw(w, http.StatusOK, payload)
}

type runResponse struct {
	FiscalYear   int                `json:"fiscalYear"`
	Calculations []calculationEntry `json:"calculations"`
	CSV          string             `json:"csv"`
	Warnings     []string           `json:"warnings,omitempty"`
	Duration     string             `json:"duration"`
}

type calculationEntry struct {
	Name   string          `json:"name"`
	Type   calculator.Type `json:"type"`
	Result interface{}     `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Field  string          `json:"field,omitempty"`
}

// handleRun accepts a YAML configuration file, as the CLI reads it, and runs
// every enabled calculation in it. A failing calculation is reported in its
// entry without failing the others.
func (h *handler) handleRun(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRun"
	start := time.Now()

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	params, err := conf.LegalParameters()
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	engine := calculator.NewEngine(h.logger, params)

	response := runResponse{
		FiscalYear: params.Year,
		Warnings:   conf.ValidateConfiguration(calculator.Known),
	}

	var results []calculator.Result
	for _, calc := range conf.Enabled() {
		entry := calculationEntry{Name: calc.Name, Type: calculator.Type(calc.Type)}
		result, err := engine.Run(calc.Name, calc.Type, calc.Params)
		if err != nil {
			entry.Error = err.Error()
			var inputErr *validation.InputError
			if errors.As(err, &inputErr) {
				entry.Field = inputErr.Field
			}
		} else {
			entry.Type = result.Type
			entry.Result = result.Value
			results = append(results, *result)
		}
		response.Calculations = append(response.Calculations, entry)
	}

	var csv bytes.Buffer
	output.WriteCsv(&csv, results)
	response.CSV = csv.String()
	response.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request) {
	params := h.engines[h.defaultYear].Parameters()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": calculator.Types(),
		"hourTypes":   params.HourTypes(),
		"concepts":    params.Concepts(),
	})
}

func (h *handler) handleParameters(w http.ResponseWriter, r *http.Request) {
	_, engine, err := h.engineFor(r.URL.Query().Get("year"))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), "server.handleParameters")
		return
	}
	h.writeJSON(w, http.StatusOK, engine.Parameters())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// engineFor picks the engine of a fiscal year given as a query value; an
// empty value selects the default year.
func (h *handler) engineFor(value string) (int, *calculator.Engine, error) {
	year := h.defaultYear
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid year %q", value)
		}
		year = parsed
	}
	engine, ok := h.engines[year]
	if !ok {
		return 0, nil, fmt.Errorf("no legal parameters for fiscal year %d (supported: %v)", year, legal.Years())
	}
	return year, engine, nil
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return nil, false
	}
	return body, true
}

func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, calculator.ErrUnknownCalculation):
		h.respondErrorWithOp(w, r, http.StatusNotFound, err.Error(), op)
	case validation.IsInvalidInput(err):
		resp := errorResponse{Error: err.Error()}
		var inputErr *validation.InputError
		if errors.As(err, &inputErr) {
			resp.Field = inputErr.Field
		}
		h.logger.Debug("invalid calculation input",
			zap.String("op", op),
			zap.String("requestId", requestID(r.Context())),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("requestId", requestID(r.Context())),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeRaw(w, status, data)
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write response",
			zap.String("op", "server.writeRaw"),
			zap.Error(err),
		)
	}
}

func (h *handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			h.logger.Warn("rate limit exceeded",
				zap.String("op", "server.withRateLimit"),
				zap.String("requestId", requestID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remoteAddr", r.RemoteAddr),
			)
			h.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: http.StatusText(http.StatusTooManyRequests)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request with the id the client sent or a new one,
// echoes it in the response and logs the completed request.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		h.logger.Info("request completed",
			zap.String("op", "server.withRequestID"),
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
