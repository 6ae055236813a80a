package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/luggify/internal/logging"
	"github.com/gorilla/mux"
)

// Option configures a Server.
type Option func(*Server)

// WithSlugFunc replaces the random slug generator.
func WithSlugFunc(fn func() string) Option {
	return func(s *Server) { s.store = newStore(fn) }
}

type Server struct {
	store   *store
	logger  logging.Logger
	router  *mux.Router
	failure atomic.Int32
}

// New builds a Server with an empty store.
func New(logger logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{store: newStore(nil), logger: logger.With("module", "devserver")}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/", s.root).Methods(http.MethodGet)
	r.HandleFunc("/geo/cities-autocomplete", s.citiesAutocomplete).Methods(http.MethodGet)
	r.HandleFunc("/generate-packing-list", s.generatePackingList).Methods(http.MethodPost)
	r.HandleFunc("/checklist/{slug}", s.getChecklist).Methods(http.MethodGet)
	r.HandleFunc("/checklist/{slug}", s.deleteChecklist).Methods(http.MethodDelete)
	r.HandleFunc("/checklist/{slug}/state", s.patchState).Methods(http.MethodPatch)
	r.HandleFunc("/tg-checklists/{owner}", s.ownerChecklists).Methods(http.MethodGet)
	r.HandleFunc("/save-tg-checklist", s.saveOwned).Methods(http.MethodPost)
	return r
}

// SetFailure makes every routed request answer with status; zero turns it
// off. It simulates a backend outage without closing the listener.
func (s *Server) SetFailure(status int) {
	s.failure.Store(int32(status))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status := int(s.failure.Load()); status != 0 {
			writeError(w, status, "backend unavailable")
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listen, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping dev server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting dev server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
