package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/marc/albumshare/internal/domain"
	"github.com/nfnt/resize"
)

// Enricher produces best-effort descriptive metadata for an uploaded photo.
// Implementations may fail or be absent entirely; photo creation never
// depends on them.
type Enricher interface {
	Enrich(ctx context.Context, photoURL string) (domain.ImageFeatures, error)
}

const maxImageBytes = 20 << 20

// ImageEnricher downloads the uploaded asset and extracts dimensions, format
// and a dominant-color breakdown. Tag/object classification is not wired to
// a model, so those fields stay empty.
type ImageEnricher struct {
	client *http.Client
}

func NewImageEnricher() *ImageEnricher {
	return &ImageEnricher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *ImageEnricher) Enrich(ctx context.Context, photoURL string) (domain.ImageFeatures, error) {
	var features domain.ImageFeatures

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return features, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return features, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return features, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return features, err
	}

	return ExtractFeatures(data)
}

// ExtractFeatures decodes image bytes into a feature block.
func ExtractFeatures(data []byte) (domain.ImageFeatures, error) {
	var features domain.ImageFeatures

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return features, fmt.Errorf("decode image: %w", err)
	}
	features.Metadata = domain.ImageMetadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Dimensions alone are still useful.
		return features, nil
	}
	features.DominantColors = dominantColors(img)

	return features, nil
}

// dominantColors downsamples the image and buckets pixels into a small named
// palette, returning the top three shares.
func dominantColors(img image.Image) []domain.DominantColor {
	small := resize.Thumbnail(64, 64, img, resize.NearestNeighbor)
	bounds := small.Bounds()

	counts := map[string]int{}
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			counts[colorName(uint8(r>>8), uint8(g>>8), uint8(b>>8))]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > 3 {
		names = names[:3]
	}

	result := make([]domain.DominantColor, 0, len(names))
	for _, name := range names {
		result = append(result, domain.DominantColor{
			Color:      name,
			Percentage: float64(counts[name]) * 100 / float64(total),
		})
	}
	return result
}

func colorName(r, g, b uint8) string {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}

	// Low saturation resolves to a gray scale name.
	if max-min < 32 {
		switch {
		case max < 64:
			return "black"
		case max > 192:
			return "white"
		default:
			return "gray"
		}
	}

	switch max {
	case r:
		if g > b && g > r/2 {
			return "yellow"
		}
		if b > g {
			return "magenta"
		}
		return "red"
	case g:
		if b > r && b > g/2 {
			return "cyan"
		}
		return "green"
	default:
		if r > g {
			return "purple"
		}
		return "blue"
	}
}
