package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/repository"
)

type PhotoService struct {
	photoRepo repository.PhotoRepository
	gateway   media.Gateway
	enricher  media.Enricher
}

// NewPhotoService wires the photo store to the media gateway. The enricher
// may be nil, in which case photos are created with empty feature metadata.
func NewPhotoService(photoRepo repository.PhotoRepository, gateway media.Gateway, enricher media.Enricher) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		gateway:   gateway,
		enricher:  enricher,
	}
}

type CreatePhotoInput struct {
	AlbumID     uuid.UUID
	Name        string
	Description string
	URL         string
}

func (s *PhotoService) Create(ctx context.Context, input CreatePhotoInput) (*domain.Photo, error) {
	photo := &domain.Photo{
		ID:          uuid.New(),
		AlbumID:     input.AlbumID,
		Name:        input.Name,
		Description: input.Description,
		URL:         input.URL,
		CreatedAt:   time.Now(),
	}

	// Enrichment is best effort: a failed download or decode leaves the
	// feature block empty but never blocks creation.
	if s.enricher != nil {
		features, err := s.enricher.Enrich(ctx, input.URL)
		if err != nil {
			log.Printf("WARN [service.Photo] enrichment failed for %s: %v", input.URL, err)
		} else if err := photo.SetFeatures(features); err != nil {
			log.Printf("WARN [service.Photo] could not store features for %s: %v", input.URL, err)
		}
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Get(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	return s.photoRepo.GetByID(ctx, id)
}

func (s *PhotoService) ListAll(ctx context.Context) ([]*domain.Photo, error) {
	return s.photoRepo.GetAll(ctx)
}

func (s *PhotoService) FindByAlbum(ctx context.Context, albumID uuid.UUID, filter domain.PhotoFilter) ([]*domain.Photo, error) {
	return s.photoRepo.FindByAlbum(ctx, albumID, filter)
}

// AlbumCount is the payload of the count query mode: the caller echoes the
// album name it is displaying and gets the photo count alongside it.
type AlbumCount struct {
	AlbumName string `json:"albumName"`
	Count     int64  `json:"count"`
}

func (s *PhotoService) CountForAlbum(ctx context.Context, albumID uuid.UUID, albumName string) (*AlbumCount, error) {
	count, err := s.photoRepo.CountByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	return &AlbumCount{AlbumName: albumName, Count: count}, nil
}

func (s *PhotoService) Update(ctx context.Context, id uuid.UUID, name, description string) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photo.Name = name
	photo.Description = description

	if err := s.photoRepo.Update(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Delete removes the remote asset first; a media-host failure blocks the
// local delete. The asset id is derived from the stored URL rather than
// trusted from the caller.
func (s *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.gateway.DeleteAssets(ctx, []string{s.gateway.AssetID(photo.URL)}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	return s.photoRepo.Delete(ctx, id)
}

// DeleteBatch removes records and remote assets in fixed-size batches.
// Partial success is accepted: records already deleted stay deleted when a
// later local or remote step fails, and all failures are reported together.
func (s *PhotoService) DeleteBatch(ctx context.Context, recordIDs []uuid.UUID, assetIDs []string) error {
	var errs []error

	for _, batch := range media.MakeBatches(recordIDs, assetIDs, media.BatchSize) {
		for _, id := range batch.RecordIDs {
			if err := s.photoRepo.Delete(ctx, id); err != nil {
				errs = append(errs, fmt.Errorf("delete photo %s: %w", id, err))
			}
		}

		if err := s.gateway.DeleteAssets(ctx, batch.AssetIDs); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", domain.ErrUpstream, err))
		}
	}

	return errors.Join(errs...)
}
