package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"gorm.io/gorm"
)

type albumRepository struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) *albumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *domain.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *albumRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	var album domain.Album
	err := r.db.WithContext(ctx).First(&album, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Album, error) {
	var albums []*domain.Album
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) SearchByName(ctx context.Context, userID uuid.UUID, name string) ([]*domain.Album, error) {
	var albums []*domain.Album
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) LIKE ? ESCAPE '\\'", userID, contains(name)).
		Order("created_at ASC").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) Update(ctx context.Context, album *domain.Album) error {
	return r.db.WithContext(ctx).Save(album).Error
}

func (r *albumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Album{}, "id = ?", id).Error
}

func (r *albumRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Album{}, "user_id = ?", userID).Error
}
