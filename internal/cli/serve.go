package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/railsmith/railsmith/pkg/cache"
	"github.com/railsmith/railsmith/pkg/pipeline"
	"github.com/railsmith/railsmith/pkg/store"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transformation pipeline as an HTTP service",
		Long: `Run the transformation pipeline as an HTTP service.

Endpoints:
  GET  /healthz            liveness check
  POST /api/transform      run the pipeline on an inline netlist
  GET  /api/reports        list stored run reports
  GET  /api/reports/{id}   fetch one run report

Transform requests carry pipeline options as JSON; the netlist goes in the
source_data field. By default the service uses the local file cache and an
in-memory report store; --redis and --mongo switch both to shared backends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for shared report storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the backends and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURI string, noCache bool) error {
	cch, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := serveStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(cch, nil, st, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(runner, st, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the cache backend for service use.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL, "", 0)
	}
	return newCache(false)
}

// serveStore picks the report store backend.
func serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI != "" {
		return store.NewMongoStore(ctx, mongoURI, "railsmith")
	}
	return store.NewMemoryStore(), nil
}

// newRouter builds the HTTP API.
func newRouter(runner *pipeline.Runner, st store.Store, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/transform", func(w http.ResponseWriter, req *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(req.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		// The service only transforms inline sources; resolving paths on
		// the server host would leak its filesystem.
		opts.Source = ""
		if len(opts.SourceData) == 0 {
			writeError(w, http.StatusBadRequest, errors.New("source_data is required"))
			return
		}

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			loggerFromContext(req.Context()).Warn("transform request failed", "err", err)
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, http.StatusOK, transformResponse{
			NetHash:   result.NetHash,
			Gates:     result.Stats.GateCount,
			Depth:     result.Stats.Depth,
			AvgFanOut: result.Stats.AvgFanOut,
			ScoapSum:  result.ScoapSum,
			Cached:    result.CacheInfo.NetHit,
			ReportID:  result.ReportID,
			Artifacts: result.Artifacts,
		})
	})

	r.Get("/api/reports", func(w http.ResponseWriter, req *http.Request) {
		reports, err := st.List(req.Context(), 50)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, reports)
	})

	r.Get("/api/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
		rep, err := st.Load(req.Context(), chi.URLParam(req, "id"))
		if errors.Is(err, store.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})

	return r
}

// requestLogger attaches a request-scoped logger carrying the request ID and
// emits a debug line per handled request.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLog := l.With("req", middleware.GetReqID(req.Context()))
			start := time.Now()
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), reqLog)))
			reqLog.Debug("handled request",
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start))
		})
	}
}

// transformResponse is the JSON body returned by POST /api/transform.
// Artifact bytes serialize as base64 strings.
type transformResponse struct {
	NetHash   string            `json:"netHash"`
	Gates     int               `json:"gates"`
	Depth     int               `json:"depth"`
	AvgFanOut float64           `json:"avgFanOut"`
	ScoapSum  uint64            `json:"scoapSum,omitempty"`
	Cached    bool              `json:"cached"`
	ReportID  string            `json:"reportId,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
