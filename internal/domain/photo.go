package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DominantColor is one entry of the best-effort color breakdown of an image.
type DominantColor struct {
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// DetectedObject is a classifier label with its confidence. The enrichment
// collaborator may leave this empty.
type DetectedObject struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// ImageFeatures is the descriptive block attached to a photo. It is
// non-authoritative and exists only to drive filtering; photos are valid
// with a zero value.
type ImageFeatures struct {
	DominantColors []DominantColor  `json:"dominantColors,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Objects        []DetectedObject `json:"objects,omitempty"`
	Metadata       ImageMetadata    `json:"metadata"`
}

func (f ImageFeatures) IsZero() bool {
	return len(f.DominantColors) == 0 && len(f.Tags) == 0 &&
		len(f.Objects) == 0 && f.Metadata == (ImageMetadata{})
}

type Photo struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	AlbumID     uuid.UUID      `json:"albumId" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	URL         string         `json:"url" gorm:"not null"`
	Features    datatypes.JSON `json:"imageFeatures,omitempty"`

	// Filter columns denormalized from Features so the query layer stays in
	// plain SQL across backends.
	Width     int       `json:"-"`
	Height    int       `json:"-"`
	Format    string    `json:"-"`
	TagList   string    `json:"-"`
	ColorList string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// SetFeatures stores the feature block and refreshes the filter columns.
func (p *Photo) SetFeatures(f ImageFeatures) error {
	if f.IsZero() {
		p.Features = nil
		p.Width, p.Height, p.Format = 0, 0, ""
		p.TagList, p.ColorList = "", ""
		return nil
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	p.Features = datatypes.JSON(raw)
	p.Width = f.Metadata.Width
	p.Height = f.Metadata.Height
	p.Format = f.Metadata.Format

	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		tags = append(tags, strings.ToLower(t))
	}
	p.TagList = strings.Join(tags, ",")

	colors := make([]string, 0, len(f.DominantColors))
	for _, c := range f.DominantColors {
		colors = append(colors, strings.ToLower(c.Color))
	}
	p.ColorList = strings.Join(colors, ",")
	return nil
}

func (p *Photo) GetFeatures() (ImageFeatures, error) {
	var f ImageFeatures
	if len(p.Features) == 0 {
		return f, nil
	}
	err := json.Unmarshal(p.Features, &f)
	return f, err
}

// PhotoFilter narrows an album-scoped photo listing. Zero-valued fields are
// unconstrained; provided ones are ANDed together. Name, Tag and Color match
// case-insensitive substrings, Width and Height match exactly.
type PhotoFilter struct {
	Name   string
	Tag    string
	Width  int
	Height int
	Color  string
}

func (f PhotoFilter) IsZero() bool {
	return f == PhotoFilter{}
}
