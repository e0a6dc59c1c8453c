package spotimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/storage"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
)

const (
	thumbnailMaxWidth  = 480
	thumbnailMaxHeight = 320
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadRequest struct {
	SpotID      string
	ActorID     string
	IsAdmin     bool
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

// SpotCatalog resolves ownership for upload authorization.
type SpotCatalog interface {
	GetByID(ctx context.Context, id string) (*spot.Spot, error)
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Image, error)
	Open(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, string, error)
	ListBySpot(ctx context.Context, spotID string) ([]*Image, error)
	Delete(ctx context.Context, id string, actorID string, isAdmin bool) error
}

type service struct {
	repo      Repository
	catalog   SpotCatalog
	store     storage.Storage
	processor *storage.ImageProcessor
	maxBytes  int64
	log       *zap.Logger
}

func NewService(repo Repository, catalog SpotCatalog, store storage.Storage, maxBytes int64, log *zap.Logger) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		store:     store,
		processor: storage.NewImageProcessor(),
		maxBytes:  maxBytes,
		log:       log.Named("spotimage"),
	}
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*Image, error) {
	ext, ok := allowedContentTypes[req.ContentType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if req.SizeBytes > s.maxBytes {
		return nil, ErrTooLarge
	}

	sp, err := s.catalog.GetByID(ctx, req.SpotID)
	if err != nil {
		return nil, err
	}
	if sp.OwnerID != req.ActorID && !req.IsAdmin {
		return nil, ErrNotOwner
	}

	// Buffer the upload so the original and the thumbnail can both read it.
	data, err := io.ReadAll(io.LimitReader(req.Content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	name := uuid.NewString()
	img := &Image{
		SpotID:        sp.ID,
		Path:          path.Join("spots", sp.ID, name+ext),
		ThumbnailPath: path.Join("spots", sp.ID, name+"_thumb.jpg"),
		ContentType:   req.ContentType,
		SizeBytes:     int64(len(data)),
	}

	if err := s.store.Save(ctx, img.Path, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store image failed: %w", err)
	}

	thumb, err := s.processor.GenerateThumbnail(bytes.NewReader(data), thumbnailMaxWidth, thumbnailMaxHeight)
	if err != nil {
		_ = s.store.Delete(ctx, img.Path)
		return nil, ErrUnsupportedType
	}
	if err := s.store.Save(ctx, img.ThumbnailPath, thumb); err != nil {
		_ = s.store.Delete(ctx, img.Path)
		return nil, fmt.Errorf("store thumbnail failed: %w", err)
	}

	if err := s.repo.Create(ctx, img); err != nil {
		_ = s.store.Delete(ctx, img.Path)
		_ = s.store.Delete(ctx, img.ThumbnailPath)
		return nil, err
	}

	return img, nil
}

func (s *service) Open(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, string, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	p, contentType := img.Path, img.ContentType
	if thumbnail {
		p, contentType = img.ThumbnailPath, "image/jpeg"
	}

	rc, err := s.store.Get(ctx, p)
	if err != nil {
		return nil, "", ErrNotFound
	}
	return rc, contentType, nil
}

func (s *service) ListBySpot(ctx context.Context, spotID string) ([]*Image, error) {
	return s.repo.ListBySpot(ctx, spotID)
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isAdmin bool) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sp, err := s.catalog.GetByID(ctx, img.SpotID)
	if err != nil {
		return err
	}
	if sp.OwnerID != actorID && !isAdmin {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Row is gone; orphaned files are only disk waste.
	if err := s.store.Delete(ctx, img.Path); err != nil {
		s.log.Warn("delete image file failed", zap.String("path", img.Path), zap.Error(err))
	}
	if err := s.store.Delete(ctx, img.ThumbnailPath); err != nil {
		s.log.Warn("delete thumbnail file failed", zap.String("path", img.ThumbnailPath), zap.Error(err))
	}
	return nil
}
