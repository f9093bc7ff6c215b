// Package server serves a dashboard live: the page itself, a JSON API over
// its widgets and a websocket that streams animation frames and tooltip
// updates while taking pointer events back.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/buffos/go-datadash/internal/config"
	"github.com/buffos/go-datadash/internal/dashboard"
)

// Server serves one dashboard document. HTTP endpoints answer from a
// shared page rendered once at start; every websocket gets its own page,
// animated live.
type Server struct {
	router chi.Router
	cfg    *config.Config
	source []byte
	page   *dashboard.Page
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New loads and renders source. logger receives warnings from the page.
func New(cfg *config.Config, source []byte, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	page, err := dashboard.LoadBytes(source, cfg.PageOptions(logger)...)
	if err != nil {
		return nil, err
	}
	if err := page.Render(context.Background(), nil); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		source:   source,
		page:     page,
		logger:   logger,
		sessions: make(map[string]*session),
	}
	s.router = s.buildRouter()
	return s, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Page is the shared page behind the HTTP endpoints.
func (s *Server) Page() *dashboard.Page { return s.page }

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Serving dashboard on %s", addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	s.closeSessions()
	s.page.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api/widgets", func(r chi.Router) {
		r.Get("/", s.handleWidgets)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleWidget)
			r.Get("/frame.svg", s.handleFrameSVG)
			r.Get("/frame.png", s.handleFramePNG)
			r.Get("/hit", s.handleHit)
		})
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := s.page.HTML()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, withClient(html))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := len(s.sessions)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"widgets":  len(s.page.Widgets()),
		"sessions": n,
	})
}

func (s *Server) handleWidgets(w http.ResponseWriter, r *http.Request) {
	ws := s.page.Widgets()
	infos := make([]dashboard.Info, 0, len(ws))
	for _, wd := range ws {
		infos = append(infos, wd.Info())
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) widget(w http.ResponseWriter, r *http.Request) (*dashboard.Widget, bool) {
	id := chi.URLParam(r, "id")
	wd, ok := s.page.Widget(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no widget %q", id))
	}
	return wd, ok
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	wd, ok := s.widget(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wd.Info())
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	wd, ok := s.widget(w, r)
	if !ok {
		return
	}
	svg, err := wd.SVG()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, svg)
}

func (s *Server) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	wd, ok := s.widget(w, r)
	if !ok {
		return
	}
	if !wd.Canvas() {
		writeError(w, http.StatusNotFound, dashboard.ErrNoFrame.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := wd.WritePNG(w); err != nil {
		s.logger.Printf("Error writing PNG for %s: %v", wd.ID, err)
	}
}

type hitResponse struct {
	Hit  bool   `json:"hit"`
	Text string `json:"text,omitempty"`
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	wd, ok := s.widget(w, r)
	if !ok {
		return
	}
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}
	text, hit := wd.HitTest(x, y)
	writeJSON(w, http.StatusOK, hitResponse{Hit: hit, Text: text})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
