package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// EmailTakenByOther reports whether email belongs to a user other than id.
	EmailTakenByOther(ctx context.Context, id uuid.UUID, email string) (bool, error)
}

type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Album, error)
	SearchByName(ctx context.Context, userID uuid.UUID, name string) ([]*domain.Album, error)
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	GetAll(ctx context.Context) ([]*domain.Photo, error)
	FindByAlbum(ctx context.Context, albumID uuid.UUID, filter domain.PhotoFilter) ([]*domain.Photo, error)
	CountByAlbum(ctx context.Context, albumID uuid.UUID) (int64, error)
	Update(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAlbumID(ctx context.Context, albumID uuid.UUID) error
}

type Repositories struct {
	User  UserRepository
	Album AlbumRepository
	Photo PhotoRepository
}
