package api

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
)

// maxCachedEvaluations bounds the evaluation cache; it is cleared when full.
const maxCachedEvaluations = 256

// Server exposes the calculation engine over JSON HTTP
type Server struct {
	Engine  *calculation.Engine
	Compare *compare.CompareEngine
	Logger  calculation.Logger
	// AccessLog enables chi's request logger
	AccessLog bool

	mu    sync.RWMutex
	cache map[string]*domain.Evaluation
}

// NewServer creates a server around engine
func NewServer(engine *calculation.Engine) *Server {
	return &Server{
		Engine:  engine,
		Compare: compare.NewCompareEngine(engine),
		Logger:  engine.Logger,
		cache:   make(map[string]*domain.Evaluation),
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/states", s.handleStates)
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/compare", s.handleCompare)
		r.Get("/sensitivity", s.handleSensitivity)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Routes()}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Tables.LotteryStates())
}

// EvaluateRequest is the body of POST /api/evaluate. Amounts may be JSON
// numbers or strings such as "$1.5B" or "52%".
type EvaluateRequest struct {
	AdvertisedJackpot flexString `json:"advertisedJackpot"`
	CashValuePercent  flexString `json:"cashValuePercent"`
	State             string     `json:"state"`
	FilingStatus      string     `json:"filingStatus"`
}

// EvaluateResponse is a rounded evaluation stamped with a report ID
type EvaluateResponse struct {
	ID string `json:"id"`
	output.Report
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
		return
	}

	in, err := req.input()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	eval, err := s.evaluate(r.Context(), in)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	// ?format= selects any other report formatter
	if name := r.URL.Query().Get("format"); name != "" && output.NormalizeFormatName(name) != "json" {
		f := output.GetFormatterByName(name)
		if f == nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", name))
			return
		}
		data, err := f.Format(eval)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", contentType(f.Extension()))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{ID: uuid.NewString(), Report: output.NewReport(eval)})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := queryInput(q.Get("jackpot"), q.Get("cash"), q.Get("base"), q.Get("status"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var states []string
	if raw := q.Get("states"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				states = append(states, code)
			}
		}
	}

	compSet, err := s.Compare.CompareStates(r.Context(), compare.CompareOptions{
		AdvertisedJackpot: in.AdvertisedJackpot,
		CashValuePercent:  in.CashValuePercent,
		FilingStatus:      in.FilingStatus,
		BaseState:         in.StateCode,
		States:            states,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, compSet.Rounded())
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jackpot, err := config.ParseAmount(q.Get("jackpot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rng := calculation.DefaultSensitivityRange()
	if v := q.Get("min"); v != "" {
		if rng.MinPercent, err = config.ParsePercent(v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if v := q.Get("max"); v != "" {
		if rng.MaxPercent, err = config.ParsePercent(v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if v := q.Get("steps"); v != "" {
		if rng.Steps, err = strconv.Atoi(v); err != nil || rng.Steps < 1 {
			writeError(w, http.StatusBadRequest, &domain.InputError{Field: "steps", Value: v, Message: "must be a positive integer"})
			return
		}
	}

	points, err := s.Engine.CashValueSensitivity(r.Context(), domain.Input{
		AdvertisedJackpot: jackpot,
		StateCode:         q.Get("state"),
		FilingStatus:      domain.FilingStatus(defaultString(q.Get("status"), string(domain.FilingSingle))),
	}, rng)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	out, err := output.SensitivityJSONFormatter{}.FormatSensitivity(points)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// evaluate runs the engine, reusing a cached result for identical inputs
func (s *Server) evaluate(ctx context.Context, in domain.Input) (*domain.Evaluation, error) {
	key := inputKey(in)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.Engine.Logger.Debugf("evaluation cache hit %s", key)
		return cached, nil
	}

	eval, err := s.Engine.Evaluate(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if len(s.cache) >= maxCachedEvaluations {
		s.cache = make(map[string]*domain.Evaluation)
	}
	s.cache[key] = eval
	s.mu.Unlock()
	return eval, nil
}

func inputKey(in domain.Input) string {
	raw := strings.Join([]string{
		in.AdvertisedJackpot.String(),
		in.CashValuePercent.String(),
		domain.NormalizeStateCode(in.StateCode),
		strings.ToLower(string(in.FilingStatus)),
	}, "|")
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", sum[:8])
}

func (req EvaluateRequest) input() (domain.Input, error) {
	return queryInput(string(req.AdvertisedJackpot), string(req.CashValuePercent), req.State, req.FilingStatus)
}

func queryInput(jackpot, cash, state, status string) (domain.Input, error) {
	amount, err := config.ParseAmount(jackpot)
	if err != nil {
		return domain.Input{}, err
	}
	pct, err := config.ParsePercent(cash)
	if err != nil {
		return domain.Input{}, err
	}
	in := domain.Input{
		AdvertisedJackpot: amount,
		CashValuePercent:  pct,
		StateCode:         state,
		FilingStatus:      domain.FilingStatus(defaultString(status, string(domain.FilingSingle))),
	}
	if err := config.NewInputParser(nil).ValidateInput(&in); err != nil {
		return domain.Input{}, err
	}
	return in, nil
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func contentType(ext string) string {
	switch ext {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv"
	case "md":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", string(data))
	}
	*f = flexString(n.String())
	return nil
}
