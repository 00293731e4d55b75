package service

import (
	"context"
	"errors"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

var ErrEmptyMessage = errors.New("empty_message")

// MessageService is the residents' message board. Deliberately small: post
// and list, no edits, no deletes.
type MessageService struct {
	Store store.Store
}

func (s *MessageService) Post(ctx context.Context, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Message{}, err
	}

	m := domain.Message{
		ID:         idx.New().String(),
		SenderID:   caller.ID,
		SenderName: caller.DisplayName,
		Message:    text,
	}
	if err := s.Store.Messages().CreateMessage(ctx, m); err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

func (s *MessageService) List(ctx context.Context, limit int) ([]domain.Message, error) {
	return s.Store.Messages().ListMessages(ctx, limit)
}
