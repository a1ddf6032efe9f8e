package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/repository"
)

type UserService struct {
	userRepo  repository.UserRepository
	albumRepo repository.AlbumRepository
	photoRepo repository.PhotoRepository
	gateway   media.Gateway
}

func NewUserService(userRepo repository.UserRepository, albumRepo repository.AlbumRepository, photoRepo repository.PhotoRepository, gateway media.Gateway) *UserService {
	return &UserService{
		userRepo:  userRepo,
		albumRepo: albumRepo,
		photoRepo: photoRepo,
		gateway:   gateway,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	BirthDate time.Time
	Gender    string
}

// Update rewrites the profile fields. The password hash is never touched on
// this path.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTakenByOther(ctx, id, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.BirthDate = input.BirthDate
	user.Gender = input.Gender
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete cascades: each album's photos go first, then the albums, then the
// user record. The steps are not wrapped in one transaction, so a failure
// partway leaves already-deleted children gone. Remote assets are deleted
// best effort; a media-host failure does not stop the local cascade here.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	albums, err := s.albumRepo.GetByUserID(ctx, id)
	if err != nil {
		return err
	}

	for _, album := range albums {
		photos, err := s.photoRepo.FindByAlbum(ctx, album.ID, domain.PhotoFilter{})
		if err != nil {
			return err
		}

		assetIDs := make([]string, 0, len(photos))
		for _, photo := range photos {
			assetIDs = append(assetIDs, s.gateway.AssetID(photo.URL))
		}
		if err := s.gateway.DeleteAssets(ctx, assetIDs); err != nil {
			log.Printf("ERROR [service.User] remote asset cleanup for album %s: %v", album.ID, err)
		}

		if err := s.photoRepo.DeleteByAlbumID(ctx, album.ID); err != nil {
			return err
		}
	}

	if err := s.albumRepo.DeleteByUserID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
