package server

import (
	"context"
	"github.com/MarselErlan/supabase-02-api/handlers"
	"github.com/MarselErlan/supabase-02-api/middlewares"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/MarselErlan/supabase-02-api/utils"
	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type Server struct {
	chi.Router
}

// SetupRoutes provides all the routes that can be used
func SetupRoutes(items *handlers.ItemHandler) *Server {
	router := chi.NewRouter()
	router.Use(middlewares.CommonMiddlewares()...)
	router.NotFound(middlewares.NotFound)
	router.MethodNotAllowed(middlewares.MethodNotAllowed)

	// health endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, models.Response{Success: true})
	})

	router.Post("/items", items.CreateItem)
	router.Get("/items", items.GetAllItems)
	return &Server{Router: router}
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout
func (svc *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           svc,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Infof("shutdown requested, draining requests for up to %s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
