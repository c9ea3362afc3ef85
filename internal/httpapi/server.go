package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/archivekeeper/internal/legacy"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

const shutdownTimeout = 5 * time.Second

// Server serves the REST API.
type Server struct {
	address  string
	svc      *services.Services
	migrator *legacy.Migrator
	log      logging.Logger

	// catalogWebURL is the fallback for record links when no catalogWebUrl
	// setting is saved.
	catalogWebURL string
}

func New(address string, svc *services.Services, migrator *legacy.Migrator, catalogWebURL string, log logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	if catalogWebURL == "" {
		catalogWebURL = models.DefaultCatalogWebURL
	}
	return &Server{
		address:       address,
		svc:           svc,
		migrator:      migrator,
		log:           log.With("module", "http_api"),
		catalogWebURL: catalogWebURL,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.search)
		r.Route("/records/{id}", func(r chi.Router) {
			r.Get("/", s.getRecord)
			r.Get("/children", s.getChildren)
			r.Post("/bookmark", s.bookmarkRecord)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.listBookmarks)
			r.Post("/", s.createBookmark)
			r.Get("/{id}", s.getBookmark)
			r.Patch("/{id}", s.updateBookmark)
			r.Delete("/{id}", s.deleteBookmark)
			r.Get("/{id}/tags", s.bookmarkTags)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Put("/order", s.reorderCategories)
			r.Get("/{id}", s.getCategory)
			r.Patch("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.listTags)
			r.Post("/", s.createTag)
			r.Post("/ensure", s.ensureTag)
			r.Get("/{id}", s.getTag)
			r.Patch("/{id}", s.renameTag)
			r.Delete("/{id}", s.deleteTag)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.allSettings)
			r.Put("/", s.saveSettings)
			r.Get("/{key}", s.getSetting)
		})

		r.Post("/legacy/migrate", s.migrateLegacy)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "stopping http server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.log.Info(ctx, "starting http server", "address", listen.Addr().String())
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
