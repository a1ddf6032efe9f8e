package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/repository"
)

type AlbumService struct {
	albumRepo repository.AlbumRepository
	photoRepo repository.PhotoRepository
	gateway   media.Gateway
}

func NewAlbumService(albumRepo repository.AlbumRepository, photoRepo repository.PhotoRepository, gateway media.Gateway) *AlbumService {
	return &AlbumService{
		albumRepo: albumRepo,
		photoRepo: photoRepo,
		gateway:   gateway,
	}
}

type AlbumInput struct {
	Name        string
	Description string
	Date        time.Time
}

func (s *AlbumService) Create(ctx context.Context, userID uuid.UUID, input AlbumInput) (*domain.Album, error) {
	album := &domain.Album{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   time.Now(),
	}

	if err := s.albumRepo.Create(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) Get(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	return s.albumRepo.GetByID(ctx, id)
}

func (s *AlbumService) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Album, error) {
	return s.albumRepo.GetByUserID(ctx, userID)
}

func (s *AlbumService) SearchByName(ctx context.Context, userID uuid.UUID, name string) ([]*domain.Album, error) {
	return s.albumRepo.SearchByName(ctx, userID, name)
}

func (s *AlbumService) Update(ctx context.Context, id uuid.UUID, input AlbumInput) (*domain.Album, error) {
	album, err := s.albumRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	album.Name = input.Name
	album.Description = input.Description
	album.Date = input.Date

	if err := s.albumRepo.Update(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

// Delete cascades the album's photos and then the album itself, on every
// entry point. Remote assets are removed first; a media-host failure blocks
// the local delete so records never reference assets that may still exist
// in an unknown state.
func (s *AlbumService) Delete(ctx context.Context, id uuid.UUID) error {
	album, err := s.albumRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	photos, err := s.photoRepo.FindByAlbum(ctx, album.ID, domain.PhotoFilter{})
	if err != nil {
		return err
	}

	assetIDs := make([]string, 0, len(photos))
	for _, photo := range photos {
		assetIDs = append(assetIDs, s.gateway.AssetID(photo.URL))
	}
	if err := s.gateway.DeleteAssets(ctx, assetIDs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if err := s.photoRepo.DeleteByAlbumID(ctx, album.ID); err != nil {
		return err
	}

	return s.albumRepo.Delete(ctx, album.ID)
}

func (s *AlbumService) CountPhotos(ctx context.Context, albumID uuid.UUID) (int64, error) {
	return s.photoRepo.CountByAlbum(ctx, albumID)
}
