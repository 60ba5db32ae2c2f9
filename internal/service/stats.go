package service

import (
	"context"
	"fmt"

	"github.com/bigkaa/clubsite/internal/repository"
)

// DashboardStats — сводка для главной страницы админки.
type DashboardStats struct {
	Posts          int
	Events         int
	Members        int
	UnreadMessages int
	UnreadComments int
}

// StatsService собирает сводку по содержимому сайта.
type StatsService struct {
	posts    repository.PostRepository
	events   repository.EventRepository
	members  repository.MemberRepository
	messages repository.MessageRepository
	comments repository.CommentRepository
}

// NewStatsService создаёт сервис сводки.
func NewStatsService(
	posts repository.PostRepository,
	events repository.EventRepository,
	members repository.MemberRepository,
	messages repository.MessageRepository,
	comments repository.CommentRepository,
) *StatsService {
	return &StatsService{
		posts:    posts,
		events:   events,
		members:  members,
		messages: messages,
		comments: comments,
	}
}

// Dashboard возвращает сводку для главной страницы админки.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Posts, err = s.posts.Count(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта статей: %w", err)
	}
	if stats.Events, err = s.events.Count(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта мероприятий: %w", err)
	}
	if stats.Members, err = s.members.Count(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта участников: %w", err)
	}
	if stats.UnreadMessages, err = s.messages.CountUnread(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта непрочитанных сообщений: %w", err)
	}
	if stats.UnreadComments, err = s.comments.CountUnread(ctx); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта непрочитанных комментариев: %w", err)
	}

	return stats, nil
}
