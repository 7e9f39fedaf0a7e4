package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xhad/molrmsd/internal/models"
	"github.com/xhad/molrmsd/internal/types"
	"github.com/xhad/molrmsd/pkg/loader"
	"github.com/xhad/molrmsd/pkg/molecule"
	"github.com/xhad/molrmsd/pkg/rmsd"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

type Config struct {
	Addr          string
	RateLimit     float64 // requests per second
	Burst         int
	MaxUploadSize int64 // bytes per request
}

// Upload is one molecular file sent by a client.
type Upload struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

type Structure struct {
	File  string           `json:"file"`
	Atoms models.AtomTable `json:"atoms"`
}

type Result struct {
	ID        string    `json:"id"`
	Probe     Structure `json:"probe"`
	Reference Structure `json:"reference"`
	RMSD      float64   `json:"rmsd"`
}

type Server struct {
	config     Config
	loader     types.StructureLoader
	calculator types.RMSDCalculator
	logger     *zap.Logger
	limiter    *rate.Limiter
	registry   *prometheus.Registry
	metrics    *metrics
}

func NewServer(config Config, l types.StructureLoader, c types.RMSDCalculator, logger *zap.Logger) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.RateLimit == 0 {
		config.RateLimit = 10
	}
	if config.Burst == 0 {
		config.Burst = 20
	}
	if config.MaxUploadSize == 0 {
		config.MaxUploadSize = 32 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	return &Server{
		config:     config,
		loader:     l,
		calculator: c,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst),
		registry:   registry,
		metrics:    newMetrics(registry),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/rmsd", s.limit(http.HandlerFunc(s.handleCompare)))
	mux.HandleFunc("/api/formats", s.handleFormats)
	mux.Handle("/ws", s.limit(http.HandlerFunc(s.handleWebSocket)))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Add a simple health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.comparisons.WithLabelValues("rate_limited").Inc()
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"formats": molecule.SupportedFormats()})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"id": id, "error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)
	if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.metrics.comparisons.WithLabelValues("too_large").Inc()
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"id":    id,
				"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		s.metrics.comparisons.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"id": id, "error": fmt.Sprintf("invalid upload: %v", err)})
		return
	}
	defer r.MultipartForm.RemoveAll()

	probe, err := formUpload(r, "probe")
	if err != nil {
		s.rejectUpload(w, id, err)
		return
	}
	reference, err := formUpload(r, "reference")
	if err != nil {
		s.rejectUpload(w, id, err)
		return
	}

	result, err := s.Compare(r.Context(), id, probe, reference)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"id": id, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) rejectUpload(w http.ResponseWriter, id string, err error) {
	s.metrics.comparisons.WithLabelValues(resultLabel(err)).Inc()
	writeJSON(w, statusFor(err), map[string]string{"id": id, "error": err.Error()})
}

func formUpload(r *http.Request, field string) (Upload, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return Upload{}, &badRequestError{fmt.Sprintf("missing %s file", field)}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	return Upload{Name: header.Filename, Content: content}, nil
}

// Compare stages both uploads in a directory owned by this request, loads
// them and computes the RMSD of probe against reference.
func (s *Server) Compare(ctx context.Context, id string, probe, reference Upload) (*Result, error) {
	start := time.Now()
	result, err := s.compare(ctx, id, probe, reference)
	label := resultLabel(err)
	s.metrics.comparisons.WithLabelValues(label).Inc()

	if err != nil {
		s.logger.Warn("comparison failed",
			zap.String("id", id),
			zap.String("probe", probe.Name),
			zap.String("reference", reference.Name),
			zap.String("result", label),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("comparison finished",
		zap.String("id", id),
		zap.String("probe", probe.Name),
		zap.String("reference", reference.Name),
		zap.Int("atoms", len(result.Probe.Atoms)),
		zap.Float64("rmsd", result.RMSD),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *Server) compare(ctx context.Context, id string, probe, reference Upload) (*Result, error) {
	for _, u := range []Upload{probe, reference} {
		if _, err := molecule.FormatFromPath(u.Name); err != nil {
			return nil, err
		}
	}

	dir, err := os.MkdirTemp("", "molrmsd-upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	defer os.RemoveAll(dir)

	probeTable, err := s.load(ctx, dir, "probe", probe)
	if err != nil {
		return nil, err
	}
	referenceTable, err := s.load(ctx, dir, "reference", reference)
	if err != nil {
		return nil, err
	}

	value, err := s.calculator.Calculate(probeTable, referenceTable)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:        id,
		Probe:     Structure{File: filepath.Base(probe.Name), Atoms: probeTable},
		Reference: Structure{File: filepath.Base(reference.Name), Atoms: referenceTable},
		RMSD:      value,
	}, nil
}

// load writes u under dir/role so that two uploads with the same file name
// do not collide.
func (s *Server) load(ctx context.Context, dir, role string, u Upload) (models.AtomTable, error) {
	sub := filepath.Join(dir, role)
	if err := os.Mkdir(sub, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(sub, filepath.Base(u.Name))
	if err := os.WriteFile(path, u.Content, 0o600); err != nil {
		return nil, fmt.Errorf("failed to stage %s upload: %w", role, err)
	}

	format, _ := molecule.FormatFromPath(path)
	start := time.Now()
	table, err := s.loader.Load(ctx, path)
	s.metrics.loadDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	return table, err
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func resultLabel(err error) string {
	var (
		parseErr   *loader.ParseError
		shapeErr   *rmsd.ShapeMismatchError
		orderErr   *rmsd.OrderMismatchError
		formatErr  *molecule.UnsupportedFormatError
		badRequest *badRequestError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &shapeErr):
		return "shape_mismatch"
	case errors.As(err, &orderErr):
		return "order_mismatch"
	case errors.Is(err, rmsd.ErrNoAtoms):
		return "no_atoms"
	case errors.As(err, &formatErr), errors.As(err, &badRequest):
		return "bad_request"
	}
	return "error"
}

func statusFor(err error) int {
	switch resultLabel(err) {
	case "parse_error", "shape_mismatch", "order_mismatch", "no_atoms":
		return http.StatusUnprocessableEntity
	case "bad_request":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
