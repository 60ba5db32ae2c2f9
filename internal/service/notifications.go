// Пакет service — прикладные сервисы поверх репозиториев.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/clubsite/internal/repository"
)

// NotificationCounts — счётчики непрочитанного для шапки админки.
type NotificationCounts struct {
	// Messages — непрочитанные сообщения формы обратной связи
	Messages int
	// Comments — непрочитанные комментарии к статьям
	Comments int
}

// NotificationService считает непрочитанные сообщения и комментарии.
type NotificationService struct {
	messages repository.MessageRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

// NewNotificationService создаёт сервис уведомлений.
func NewNotificationService(
	messages repository.MessageRepository,
	comments repository.CommentRepository,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		messages: messages,
		comments: comments,
		logger:   logger.With(slog.String("component", "service.notifications")),
	}
}

// Counts возвращает счётчики непрочитанного. Ошибки подсчёта не
// фатальны для страницы: логируются, счётчик остаётся нулевым.
func (s *NotificationService) Counts(ctx context.Context) NotificationCounts {
	var counts NotificationCounts

	msgCount, err := s.messages.CountUnread(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчёта непрочитанных сообщений", slog.Any("error", err))
	} else {
		counts.Messages = msgCount
	}

	cmtCount, err := s.comments.CountUnread(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчёта непрочитанных комментариев", slog.Any("error", err))
	} else {
		counts.Comments = cmtCount
	}

	return counts
}
