package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"gorm.io/gorm"
)

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *photoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) GetAll(ctx context.Context) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// FindByAlbum lists an album's photos, narrowed by the filter. Provided
// criteria are ANDed; absent ones put no constraint on their field. Results
// come back in creation order.
func (r *photoRepository) FindByAlbum(ctx context.Context, albumID uuid.UUID, filter domain.PhotoFilter) ([]*domain.Photo, error) {
	q := r.db.WithContext(ctx).Where("album_id = ?", albumID)

	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", contains(filter.Name))
	}
	if filter.Tag != "" {
		q = q.Where("tag_list LIKE ? ESCAPE '\\'", contains(filter.Tag))
	}
	if filter.Width != 0 {
		q = q.Where("width = ?", filter.Width)
	}
	if filter.Height != 0 {
		q = q.Where("height = ?", filter.Height)
	}
	if filter.Color != "" {
		q = q.Where("color_list LIKE ? ESCAPE '\\'", contains(filter.Color))
	}

	var photos []*domain.Photo
	if err := q.Order("created_at ASC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) CountByAlbum(ctx context.Context, albumID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Photo{}).
		Where("album_id = ?", albumID).
		Count(&count).Error
	return count, err
}

func (r *photoRepository) Update(ctx context.Context, photo *domain.Photo) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Photo{}, "id = ?", id).Error
}

func (r *photoRepository) DeleteByAlbumID(ctx context.Context, albumID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Photo{}, "album_id = ?", albumID).Error
}

func contains(s string) string {
	return "%" + likeEscape(strings.ToLower(s)) + "%"
}

// likeEscape neutralizes LIKE wildcards in user-supplied search terms.
func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
