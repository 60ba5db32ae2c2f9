// Пакет server — HTTP-сервер сайта с graceful shutdown.
// Без TLS — termination выполняется на reverse proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/clubsite/internal/config"
	"github.com/bigkaa/clubsite/internal/ui/handlers"
	"github.com/bigkaa/clubsite/internal/ui/middleware"
	"github.com/bigkaa/clubsite/internal/ui/static"
	"github.com/bigkaa/clubsite/internal/web"
)

// ResourceRoutes — смонтированный CRUD-роутер одного ресурса админки.
type ResourceRoutes struct {
	// Name — сегмент URL ресурса (posts, events, team, sections)
	Name string
	// Router — роутер, собранный resource.Handler.Routes()
	Router chi.Router
}

// Deps — собранные зависимости HTTP-сервера.
type Deps struct {
	Web           *web.Handler
	Auth          *handlers.AuthHandler
	Dashboard     *handlers.DashboardHandler
	Messages      *handlers.MessagesHandler
	Comments      *handlers.CommentsHandler
	Resources     []ResourceRoutes
	SessionAuth   *middleware.SessionAuth
	CSRF          *middleware.CSRF
	Notifications *middleware.Notifications
	// Media — обработчик раздачи файлов медиа-хранилища (/media/*)
	Media http.Handler
	// Health — обработчик health endpoints
	Health *HealthHandler
}

// Server — HTTP-сервер сайта.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger(logger))

	// Health и metrics — вне публичного layout, проверяются извне
	router.Get("/health/live", deps.Health.HealthLive)
	router.Get("/health/ready", deps.Health.HealthReady)
	router.Handle("/metrics", promhttp.Handler())

	// Статика и медиа-хранилище
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))
	router.Handle("/media/*", deps.Media)

	// Админ-панель
	router.Route(cfg.AdminPath, func(r chi.Router) {
		// Вход — без сессии
		r.Get("/login", deps.Auth.HandleLoginForm)
		r.Post("/login", deps.Auth.HandleLogin)

		// Защищённая часть
		r.Group(func(r chi.Router) {
			r.Use(middleware.MethodOverride())
			r.Use(deps.SessionAuth.Middleware())
			r.Use(deps.CSRF.Middleware())
			r.Use(deps.Notifications.Middleware())

			r.Get("/", deps.Dashboard.Handle)
			r.Post("/logout", deps.Auth.HandleLogout)
			r.Mount("/messages", deps.Messages.Routes())
			r.Mount("/comments", deps.Comments.Routes())

			for _, res := range deps.Resources {
				r.Mount("/"+res.Name, res.Router)
			}
		})
	})

	// Публичная часть сайта
	router.Mount("/", deps.Web.Routes())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
