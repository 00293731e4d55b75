package service

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/storage"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

// DocumentService stores association documents: the file itself goes to the
// object store, the metadata row into the database. Keys are namespaced by
// the new document id so an upload can never collide with or overwrite an
// earlier file.
type DocumentService struct {
	Store    store.Store
	Uploader storage.Uploader
	Audit    *audit.Recorder
}

type UploadInput struct {
	Title       string
	Category    string
	Description string
	Filename    string
	ContentType string
	Body        io.Reader
}

func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (domain.Document, error) {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Document{}, err
	}
	if caller.Role == domain.RoleResident {
		return domain.Document{}, ErrForbidden
	}

	id := idx.New().String()
	key := path.Join("documents", id, path.Base(in.Filename))

	if err := s.Uploader.Upload(ctx, key, in.ContentType, in.Body); err != nil {
		return domain.Document{}, err
	}

	d := domain.Document{
		ID:          id,
		Title:       in.Title,
		Category:    in.Category,
		FileURL:     s.Uploader.URL(key),
		FileType:    in.ContentType,
		Description: in.Description,
		UploadedBy:  caller.ID,
	}
	if d.Category == "" {
		d.Category = "public"
	}

	if err := s.Store.Documents().CreateDocument(ctx, d); err != nil {
		// The object is orphaned if we keep it; best effort cleanup.
		_ = s.Uploader.Delete(ctx, key)
		return domain.Document{}, err
	}

	s.Audit.Record(ctx, domain.ActionUploadDocument, "document", d.ID,
		map[string]any{"title": d.Title, "category": d.Category})
	return s.Store.Documents().GetDocumentByID(ctx, d.ID)
}

func (s *DocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	return s.Store.Documents().ListDocuments(ctx, category)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	err = s.Store.Documents().DeleteDocument(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
