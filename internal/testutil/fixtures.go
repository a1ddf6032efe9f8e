package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	firstName string
	lastName  string
	email     string
	password  string
	birthDate time.Time
	gender    string
	isAdmin   bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		firstName: "Test",
		lastName:  "User",
		email:     fmt.Sprintf("test_%s@example.com", uuid.New().String()[:8]),
		password:  "testpassword123",
		birthDate: time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		gender:    "F",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.isAdmin = true
	return b
}

// Build creates the user in the database and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		BirthDate:    b.birthDate,
		Gender:       b.gender,
		IsAdmin:      b.isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AlbumBuilder creates test albums with a builder pattern
type AlbumBuilder struct {
	userID      uuid.UUID
	name        string
	description string
	date        time.Time
}

func NewAlbumBuilder(userID uuid.UUID) *AlbumBuilder {
	return &AlbumBuilder{
		userID:      userID,
		name:        fmt.Sprintf("album_%s", uuid.New().String()[:8]),
		description: "test album",
		date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *AlbumBuilder) WithName(name string) *AlbumBuilder {
	b.name = name
	return b
}

func (b *AlbumBuilder) Build(t *testing.T, db *gorm.DB) *domain.Album {
	t.Helper()

	album := &domain.Album{
		ID:          uuid.New(),
		UserID:      b.userID,
		Name:        b.name,
		Description: b.description,
		Date:        b.date,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(album).Error; err != nil {
		t.Fatalf("failed to create album: %v", err)
	}

	return album
}

// PhotoBuilder creates test photos with a builder pattern
type PhotoBuilder struct {
	albumID  uuid.UUID
	name     string
	url      string
	features domain.ImageFeatures
}

func NewPhotoBuilder(albumID uuid.UUID) *PhotoBuilder {
	name := fmt.Sprintf("photo_%s", uuid.New().String()[:8])
	return &PhotoBuilder{
		albumID: albumID,
		name:    name,
		url:     fmt.Sprintf("https://res.example.com/image/upload/v1/social-app/%s.jpg", name),
	}
}

func (b *PhotoBuilder) WithName(name string) *PhotoBuilder {
	b.name = name
	return b
}

func (b *PhotoBuilder) WithURL(url string) *PhotoBuilder {
	b.url = url
	return b
}

func (b *PhotoBuilder) WithFeatures(features domain.ImageFeatures) *PhotoBuilder {
	b.features = features
	return b
}

// WithAttributes is shorthand for the filterable subset of the feature block.
func (b *PhotoBuilder) WithAttributes(tag string, width, height int, colors ...string) *PhotoBuilder {
	if tag != "" {
		b.features.Tags = append(b.features.Tags, tag)
	}
	b.features.Metadata.Width = width
	b.features.Metadata.Height = height
	for _, c := range colors {
		b.features.DominantColors = append(b.features.DominantColors, domain.DominantColor{Color: c, Percentage: 50})
	}
	return b
}

func (b *PhotoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Photo {
	t.Helper()

	photo := &domain.Photo{
		ID:        uuid.New(),
		AlbumID:   b.albumID,
		Name:      b.name,
		URL:       b.url,
		CreatedAt: time.Now(),
	}
	if err := photo.SetFeatures(b.features); err != nil {
		t.Fatalf("failed to set photo features: %v", err)
	}

	if err := db.Create(photo).Error; err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}

	return photo
}
