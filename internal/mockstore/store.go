// Package mockstore serves a seeded, in-memory Listing Store over HTTP
// with the same resources and payloads as the real one.
package mockstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/mw"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/sources/seed"
)

const maxCreateBody = 1 << 20

// Store holds the catalog and answers the store API.
type Store struct {
	mu         sync.RWMutex
	categories []domain.Category
	listings   []domain.Listing
	metrics    seed.MetricsSeed

	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a store seeded with cat.
func New(cat seed.Catalog, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		categories: append([]domain.Category{}, cat.Categories...),
		listings:   append([]domain.Listing{}, cat.Listings...),
		metrics:    cat.Metrics,
		logger:     log.Named("mockstore"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Handler returns the store router.
func (s *Store) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(s.logger, false))

	r.Get("/categories", s.getCategories)
	r.Get("/apis", s.getListings)
	r.Post("/apis", s.createListing)
	r.Get("/apis/{id}", s.getListing)
	r.Get("/dashboard/metrics", s.getMetrics)
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Store) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("mock store listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Listings returns a copy of the current listings.
func (s *Store) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Listing{}, s.listings...)
}

func (s *Store) getCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.categories)
}

func (s *Store) getListings(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.listings)
}

func (s *Store) getListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == id {
			writeJSON(w, http.StatusOK, l)
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("api %q not found", id))
}

func (s *Store) getMetrics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, seed.ComputeMetrics(s.listings, s.metrics))
}

func (s *Store) createListing(w http.ResponseWriter, r *http.Request) {
	var in domain.NewListing
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.build(in)
	if err != nil {
		s.logger.Warn("rejected new api", logger.String("name", in.Name), logger.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.listings = append(s.listings, l)

	s.logger.Info("api created", logger.String("id", l.ID), logger.String("name", l.Name))
	writeJSON(w, http.StatusCreated, l)
}

// build turns a create payload into a listing. Callers hold s.mu.
func (s *Store) build(in domain.NewListing) (domain.Listing, error) {
	var cat domain.Category
	found := false
	for _, c := range s.categories {
		if c.ID == in.CategoryID {
			cat, found = c, true
			break
		}
	}
	if !found {
		return domain.Listing{}, fmt.Errorf("unknown category %q", in.CategoryID)
	}

	endpoints := make([]domain.Endpoint, 0, len(in.Endpoints))
	for _, ep := range in.Endpoints {
		ep.Method = domain.Method(strings.ToUpper(string(ep.Method)))
		endpoints = append(endpoints, ep)
	}

	now := s.now().UTC()
	l := domain.Listing{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Version:     strings.TrimSpace(in.Version),
		Owner:       strings.TrimSpace(in.Owner),
		Category:    cat,
		Tags:        domain.SplitTags(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
		BaseURL:     strings.TrimSpace(in.BaseURL),
		Auth:        domain.Auth{Type: in.AuthType, Description: in.AuthDescription},
		Endpoints:   endpoints,
	}
	if err := domain.ValidateListing(l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
