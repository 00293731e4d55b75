package service

import (
	"context"
	"errors"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

// NoticeService publishes announcements to the notice board.
type NoticeService struct {
	Store store.Store
	Audit *audit.Recorder
}

func (s *NoticeService) List(ctx context.Context, category string, limit int) ([]domain.Notice, error) {
	return s.Store.Notices().ListNotices(ctx, category, limit)
}

func (s *NoticeService) Create(ctx context.Context, n domain.Notice) (domain.Notice, error) {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Notice{}, err
	}

	n.ID = idx.New().String()
	n.CreatedBy = caller.ID
	n.IsAuto = false // only the system sets this
	if n.Category == "" {
		n.Category = "General"
	}
	if n.Date == "" {
		n.Date = time.Now().Format("2006-01-02")
	}

	if err := s.Store.Notices().CreateNotice(ctx, n); err != nil {
		return domain.Notice{}, err
	}

	s.Audit.Record(ctx, domain.ActionCreateNotice, "notice", n.ID,
		map[string]any{"title": n.Title})
	return s.Store.Notices().GetNoticeByID(ctx, n.ID)
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	err = s.Store.Notices().DeleteNotice(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
