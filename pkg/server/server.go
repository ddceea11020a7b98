// Package server exposes the INI lookup as a small HTTP API, for callers
// that query the same configuration tree repeatedly and don't want to pay
// process startup per lookup. Files are only served from within a single
// configured directory.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/confkit/iniget/pkg/ini"
)

// Config holds the settings for a lookup server.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string
	// ConfigDir is the directory lookups are confined to. Requests naming
	// a file outside it are rejected.
	ConfigDir string
}

type server struct {
	logger    log.FieldLogger
	configDir string
}

type requestLogger struct {
	log.FieldLogger
}

func (l *requestLogger) Print(v ...interface{}) {
	l.FieldLogger.Info(v...)
}

// Server is a runnable HTTP lookup service.
type Server struct {
	logger log.FieldLogger
	cfg    Config
	router chi.Router
}

// New validates cfg and builds the server's router.
func New(logger log.FieldLogger, cfg Config) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, errors.New("a listen address must be specified")
	}
	configDir, err := filepath.Abs(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("invalid config directory %q: %v", cfg.ConfigDir, err)
	}
	info, err := os.Stat(configDir)
	if err != nil {
		return nil, fmt.Errorf("unable to access config directory %q: %v", configDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config directory %q is not a directory", configDir)
	}
	cfg.ConfigDir = configDir

	return &Server{
		logger: logger.WithField("component", "server"),
		cfg:    cfg,
		router: newRouter(logger, cfg.ConfigDir),
	}, nil
}

func newRouter(logger log.FieldLogger, configDir string) chi.Router {
	router := chi.NewRouter()
	logger = logger.WithField("component", "api")
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: &requestLogger{logger}}))

	srv := &server{
		logger:    logger,
		configDir: configDir,
	}

	router.HandleFunc("/api/v1/lookup", srv.lookupHandler)
	router.HandleFunc("/healthy", srv.healthinessHandler)
	router.Handle("/metrics", promhttp.Handler())
	return router
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully.
func (srv *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    srv.cfg.ListenAddr,
		Handler: srv.router,
	}

	var g errgroup.Group
	g.Go(func() error {
		srv.logger.Infof("HTTP API server listening on %s", srv.cfg.ListenAddr)
		err := httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("HTTP API server error: %v", err)
	})
	g.Go(func() error {
		<-ctx.Done()
		srv.logger.Info("got shutdown signal, shutting down HTTP API server")
		return httpServer.Shutdown(context.Background())
	})
	return g.Wait()
}

// Handler returns the server's router, mainly for tests.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

type lookupResponse struct {
	File    string `json:"file"`
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func (srv *server) lookupHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := srv.logger

	file := r.FormValue("file")
	section := r.FormValue("section")
	key := r.FormValue("key")

	var missing []string
	for _, param := range []struct{ name, value string }{
		{"file", file},
		{"section", section},
		{"key", key},
	} {
		if param.value == "" {
			missing = append(missing, param.name)
		}
	}
	if len(missing) != 0 {
		lookupTotalCounter.WithLabelValues(outcomeBadRequest).Inc()
		writeErrorResponse(logger, w, r, http.StatusBadRequest, "the following query params are missing or empty: %s", strings.Join(missing, ", "))
		return
	}

	path, err := srv.resolvePath(file)
	if err != nil {
		lookupTotalCounter.WithLabelValues(outcomeBadRequest).Inc()
		writeErrorResponse(logger, w, r, http.StatusBadRequest, "%v", err)
		return
	}

	value, found, err := ini.LookupFile(path, section, key)
	if err != nil {
		lookupTotalCounter.WithLabelValues(outcomeSourceError).Inc()
		logger.WithError(err).Errorf("unable to read %s", path)
		writeErrorResponse(logger, w, r, http.StatusInternalServerError, "unable to read %s: %v", file, err)
		return
	}
	if !found {
		lookupTotalCounter.WithLabelValues(outcomeNotFound).Inc()
		writeErrorResponse(logger, w, r, http.StatusNotFound, "no key %q in section %q of %s", key, section, file)
		return
	}

	lookupTotalCounter.WithLabelValues(outcomeFound).Inc()
	lookupDurationHistogram.Observe(time.Since(start).Seconds())
	writeResponseAsJSON(logger, w, http.StatusOK, lookupResponse{
		File:    file,
		Section: section,
		Key:     key,
		Value:   value,
	})
}

// resolvePath joins file onto the config directory and refuses anything
// that escapes it.
func (srv *server) resolvePath(file string) (string, error) {
	if filepath.IsAbs(file) {
		return "", fmt.Errorf("file must be a relative path, got %q", file)
	}
	path := filepath.Join(srv.configDir, filepath.Clean(file))
	rel, err := filepath.Rel(srv.configDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file %q is outside the config directory", file)
	}
	return path, nil
}

func (srv *server) healthinessHandler(w http.ResponseWriter, r *http.Request) {
	writeResponseAsJSON(srv.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeErrorResponse(logger log.FieldLogger, w http.ResponseWriter, r *http.Request, status int, message string, args ...interface{}) {
	msg := fmt.Sprintf(message, args...)
	writeResponseAsJSON(logger, w, status, errorResponse{Error: msg})
}

// writeResponseAsJSON attempts to marshal an arbitrary thing to JSON then write
// it to the http.ResponseWriter
func writeResponseAsJSON(logger log.FieldLogger, w http.ResponseWriter, code int, resp interface{}) {
	enc, err := json.Marshal(resp)
	if err != nil {
		logger.WithError(err).Error("failed JSON-encoding HTTP response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(enc); err != nil {
		logger.WithError(err).Error("failed writing HTTP response")
	}
}
