package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Method string

const (
	GET  Method = "GET"
	POST Method = "POST"
)

// Handler handles a request and returns the payload, the status code and any error.
// A zero code means http.StatusOK on success and http.StatusInternalServerError on error.
type Handler func(ctx context.Context, r *http.Request) ([]byte, int, error)

type Route struct {
	Path   string
	Method Method
	Exec   Handler
}

const (
	// backlog is the number of queued requests per processing slot.
	backlog = 8
	queue   = 30 * time.Second
)

type Server struct {
	name    string
	port    int
	timeout time.Duration
	limit   int
	routes  []Route
	mounts  map[string]http.Handler
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:    name,
		port:    port,
		timeout: time.Minute,
		limit:   1,
		routes:  make([]Route, 0),
		mounts:  make(map[string]http.Handler),
	}
}

// WithTimeout bounds the time a single request can take.
func (s *Server) WithTimeout(timeout time.Duration) *Server {
	s.timeout = timeout
	return s
}

// WithLimit bounds the number of requests processed at the same time.
func (s *Server) WithLimit(limit int) *Server {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves the given handler under the path without any request limits.
func (s *Server) Mount(path string, handler http.Handler) *Server {
	s.mounts[path] = handler
	return s
}

// Router creates the http handler for all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	for path, handler := range s.mounts {
		r.Handle(path, handler)
	}
	r.Group(func(r chi.Router) {
		r.Use(middleware.ThrottleBacklog(s.limit, backlog*s.limit, queue))
		for _, route := range s.routes {
			r.MethodFunc(string(route.Method), route.Path, s.handle(route.Exec))
		}
	})
	return r
}

func (s *Server) handle(handler Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		b, code, err := handler(ctx, r)
		if err != nil {
			if code == 0 {
				code = http.StatusInternalServerError
			}
			if errors.Is(err, context.DeadlineExceeded) {
				code = http.StatusGatewayTimeout
			}
			s.error(w, err, code)
		} else {
			if code == 0 {
				code = http.StatusOK
			}
			s.respond(w, b, code)
		}
		log.Debug().
			Str("server", s.name).
			Str("path", r.URL.Path).
			Int("code", code).
			Float64("duration", time.Since(start).Seconds()).
			Msg("request")
	}
}

// Run starts the server and blocks until the context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Router(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Str("server", s.name).Msg("could not shut down server")
		}
	}()
	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) respond(w http.ResponseWriter, b []byte, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

// Error is the payload of a failed request.
type Error struct {
	Error string `json:"error"`
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("code", code).Msg("error for http request")
	}
	b, _ := json.Marshal(Error{Error: err.Error()})
	s.respond(w, b, code)
}

// Fail wraps the error with the status code it should be reported with.
func Fail(code int, err error) ([]byte, int, error) {
	return nil, code, err
}

func Live() Route {
	return Route{
		Path:   "/live",
		Method: GET,
		Exec: func(ctx context.Context, r *http.Request) (payload []byte, code int, err error) {
			return []byte("{}"), http.StatusOK, nil
		},
	}
}
