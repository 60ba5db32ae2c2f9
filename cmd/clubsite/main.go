// Точка входа сайта клуба.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// собирает репозитории, сервисы и обработчики публичной части и
// админ-панели, запускает HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/bigkaa/clubsite/internal/config"
	"github.com/bigkaa/clubsite/internal/database"
	"github.com/bigkaa/clubsite/internal/media"
	"github.com/bigkaa/clubsite/internal/repository"
	"github.com/bigkaa/clubsite/internal/resource"
	"github.com/bigkaa/clubsite/internal/server"
	"github.com/bigkaa/clubsite/internal/service"
	"github.com/bigkaa/clubsite/internal/ui/auth"
	uihandlers "github.com/bigkaa/clubsite/internal/ui/handlers"
	uimiddleware "github.com/bigkaa/clubsite/internal/ui/middleware"
	"github.com/bigkaa/clubsite/internal/ui/views"
	"github.com/bigkaa/clubsite/internal/web"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Сайт клуба запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if cfg.SessionSecret == "" {
		logger.Warn("CS_SESSION_SECRET не задан: сессии не переживут рестарт процесса")
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Репозитории
	posts := repository.NewPostRepository(pool)
	comments := repository.NewCommentRepository(pool)
	events := repository.NewEventRepository(pool)
	members := repository.NewMemberRepository(pool)
	sections := repository.NewSectionRepository(pool)
	messages := repository.NewMessageRepository(pool)

	// 6. Медиа-хранилище
	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.BaseURL, logger)
	if err != nil {
		logger.Error("Ошибка инициализации медиа-хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Сервисы
	notifications := service.NewNotificationService(messages, comments, logger)
	stats := service.NewStatsService(posts, events, members, messages, comments)

	// 8. Сессии и учётные данные администратора
	secureCookie := strings.HasPrefix(cfg.BaseURL, "https://")
	sessionManager, err := auth.NewSessionManager(cfg.SessionSecret, cfg.AdminPath, secureCookie)
	if err != nil {
		logger.Error("Ошибка инициализации менеджера сессий", slog.String("error", err.Error()))
		os.Exit(1)
	}
	credentials := auth.Credentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}

	// 9. Шаблоны
	renderer, err := views.NewRenderer()
	if err != nil {
		logger.Error("Ошибка парсинга шаблонов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	pages := uihandlers.NewPages(renderer, cfg.AdminPath, cfg.TinyMCEAPIKey, logger)

	// 10. CRUD-роутеры ресурсов админки
	resources := []server.ResourceRoutes{
		mountResource(uihandlers.PostResource(), posts, mediaStore, pages, cfg, logger),
		mountResource(uihandlers.EventResource(), events, mediaStore, pages, cfg, logger),
		mountResource(uihandlers.MemberResource(), members, mediaStore, pages, cfg, logger),
		mountResource(uihandlers.SectionResource(), sections, nil, pages, cfg, logger),
	}

	// 11. Сборка и запуск HTTP-сервера
	srv := server.New(cfg, logger, server.Deps{
		Web: web.NewHandler(posts, comments, events, members, sections, messages, renderer, logger),
		Auth: uihandlers.NewAuthHandler(
			sessionManager, credentials, pages, cfg.AdminPath, logger),
		Dashboard:     uihandlers.NewDashboardHandler(stats, pages, logger),
		Messages:      uihandlers.NewMessagesHandler(messages, pages, cfg.AdminPath, logger),
		Comments:      uihandlers.NewCommentsHandler(comments, pages, cfg.AdminPath, logger),
		Resources:     resources,
		SessionAuth:   uimiddleware.NewSessionAuth(sessionManager, cfg.AdminPath, logger),
		CSRF:          uimiddleware.NewCSRF(logger),
		Notifications: uimiddleware.NewNotifications(notifications),
		Media:         mediaStore.Handler(),
		Health:        server.NewHealthHandler(database.NewReadinessChecker(pool)),
	})

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// mountResource собирает CRUD-роутер одного ресурса админки.
func mountResource[T any](
	cfg resource.Config[T],
	store resource.Store[T],
	uploader resource.Uploader,
	pages *uihandlers.Pages,
	appCfg *config.Config,
	logger *slog.Logger,
) server.ResourceRoutes {
	h := resource.NewHandler(cfg, store, uploader, pages.Render, appCfg.AdminPath, logger)
	return server.ResourceRoutes{Name: cfg.Name, Router: h.Routes()}
}
