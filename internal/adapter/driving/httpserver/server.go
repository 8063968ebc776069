package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lucasmn/sales-insights-go/internal/application/usecase"
	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/logger"
	"github.com/lucasmn/sales-insights-go/internal/shared/types"
)

const (
	defaultListenAddr = ":8080"
	maxUploadBytes    = 32 << 20 // 32 MiB
)

// UploadProcessor is the slice of the pipeline the server drives.
type UploadProcessor interface {
	RunUpload(ctx context.Context, args *types.CLIArgs) (*usecase.UploadResult, error)
}

// Server exposes the upload pipeline over HTTP.
type Server struct {
	processor UploadProcessor
	args      *types.CLIArgs
	log       zerolog.Logger
}

// NewServer creates the HTTP server. The CLI args carry the output directory
// used both for written artifacts and for downloads.
func NewServer(processor UploadProcessor, args *types.CLIArgs) *Server {
	return &Server{
		processor: processor,
		args:      args,
		log:       logger.New(os.Getenv("LOG_LEVEL")),
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/upload", s.handleUpload)
	r.Get("/outputs/{filename}", s.handleDownload)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

// Run serves until the context is cancelled or a termination signal arrives,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.args.ListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// uploadResponse is the JSON body returned for a processed upload.
type uploadResponse struct {
	UploadID        string                  `json:"upload_id"`
	Message         string                  `json:"message,omitempty"`
	MockModeUsed    bool                    `json:"mock_mode_used"`
	MockCoordinates []entity.MockCoordinate `json:"mock_coordinates,omitempty"`
	Insights        entity.KeyInsights      `json:"key_insights"`
	Artifacts       map[string]string       `json:"artifacts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleUpload accepts a workbook as the multipart field "file", runs the
// pipeline and returns the diagnostics plus download URLs for the artifacts.
// Input-shape errors come back as 400 with the pipeline's message.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, types.ErrEmptyUpload.Error()+": missing multipart field 'file'")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		s.writeError(w, http.StatusBadRequest, "only .xlsx uploads are supported")
		return
	}

	uploadID := uuid.NewString()

	tmpPath, err := s.saveUpload(file, header.Filename, uploadID)
	if err != nil {
		s.log.Error().Err(err).Msg("could not persist upload")
		s.writeError(w, http.StatusInternalServerError, "could not persist upload")
		return
	}
	defer os.Remove(tmpPath)

	args := &types.CLIArgs{
		WorkbookFile: tmpPath,
		ReportName:   strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + "_processed",
		ReportType:   s.args.ReportType,
		Dir:          s.args.Dir,
	}

	result, err := s.processor.RunUpload(r.Context(), args)
	if err != nil {
		s.log.Warn().Err(err).Str("upload_id", uploadID).Msg("upload rejected")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := uploadResponse{
		UploadID:        uploadID,
		Message:         result.Message,
		MockModeUsed:    result.Bundle.Geocoding.MockModeUsed,
		MockCoordinates: result.Bundle.Geocoding.MockCoordinates,
		Insights:        result.Bundle.Insights,
		Artifacts:       map[string]string{},
	}
	for kind, path := range result.ArtifactPaths {
		resp.Artifacts[kind] = "/outputs/" + filepath.Base(path)
	}

	s.log.Info().
		Str("upload_id", uploadID).
		Str("file", header.Filename).
		Bool("mock_mode", resp.MockModeUsed).
		Int("transactions", resp.Insights.TotalTransactions).
		Msg("upload processed")

	s.writeJSON(w, http.StatusOK, resp)
}

// handleDownload serves one artifact from the output directory as an
// attachment. The filename is flattened so the route cannot escape the
// directory.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(chi.URLParam(r, "filename"))
	if filename == "." || filename == ".." || filename == "/" {
		s.writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := filepath.Join(s.args.Dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// saveUpload streams the uploaded workbook to a temp file named after the
// upload id.
func (s *Server) saveUpload(src io.Reader, filename, uploadID string) (string, error) {
	path := filepath.Join(os.TempDir(), uploadID+"_"+filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("could not encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
