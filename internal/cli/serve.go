package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "github.com/mlindqvist/arkigraf/pkg/errors"
	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/pipeline"
	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [records.json]",
		Short: "Serve the graph, layout, and SVG over HTTP",
		Long: `Serve the graph, layout, and SVG over HTTP.

Endpoints:

  GET /healthz      liveness probe
  GET /api/graph    built graph as JSON
  GET /api/layout   settled positions as JSON (?width=&height=&seed=)
  GET /render.svg   rendered SVG (?width=&height=&seed=&labels=1)

Layouts and artifacts are cached across requests, so repeated renders of the
same record set are served from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe loads the records once and serves them until the context ends.
func (c *CLI) runServe(ctx context.Context, input, addr string, noCache bool) error {
	records, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read records %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &graphServer{
		records: records,
		runner:  runner,
		base:    c.pipelineOptions(),
		logger:  c.Logger,
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// graphServer holds the server's fixed record set and pipeline runner.
type graphServer struct {
	records []byte
	runner  *pipeline.Runner
	base    pipeline.Options
	logger  *log.Logger
}

func (s *graphServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/layout", s.handleLayout)
	r.Get("/render.svg", s.handleSVG)

	return r
}

// requestID tags every request with a UUID for log correlation.
func (s *graphServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *graphServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *graphServer) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.runner.Build(r.Context(), s.records, s.options(r))
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := relation.MarshalGraph(g)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *graphServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.options(r)
	g, err := s.runner.Build(r.Context(), s.records, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	layout, err := s.runner.ComputeLayout(r.Context(), g, "", opts)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := force.MarshalLayout(layout)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *graphServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	opts := s.options(r)
	opts.Formats = []string{pipeline.FormatSVG}

	result, err := s.runner.Execute(r.Context(), s.records, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(result.Artifacts[pipeline.FormatSVG])
}

// options merges query parameters over the server's base options.
func (s *graphServer) options(r *http.Request) pipeline.Options {
	opts := s.base
	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil && v > 0 {
		opts.Width = v
	}
	if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil && v > 0 {
		opts.Height = v
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil && v != 0 {
		opts.Seed = v
	}
	if q.Get("labels") == "1" || q.Get("labels") == "true" {
		opts.ShowLabels = true
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if apperrors.GetCode(err) == apperrors.ErrCodeMalformedRecord || apperrors.GetCode(err) == apperrors.ErrCodeDataLoad {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": apperrors.UserMessage(err)})
}
