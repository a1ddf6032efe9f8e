package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"
)

// Gateway is the contract to the external image host. The server never
// proxies image bytes; it signs direct uploads and deletes remote assets.
type Gateway interface {
	SignUpload(params url.Values) string
	DeleteAssets(ctx context.Context, assetIDs []string) error
	AssetID(photoURL string) string
}

// CloudGateway talks to a Cloudinary-compatible media host.
type CloudGateway struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	baseURL   string
	client    *http.Client
}

func NewCloudGateway(cloudName, apiKey, apiSecret, folder string) *CloudGateway {
	return &CloudGateway{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		baseURL:   "https://api.cloudinary.com/v1_1",
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SignUpload authorizes a client-side direct upload: SHA-1 over the
// lexicographically sorted key=value pairs joined with "&", with the API
// secret appended, hex encoded. Multi-valued keys are joined with commas.
func (g *CloudGateway) SignUpload(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(params[k], ","))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + g.apiSecret))
	return hex.EncodeToString(sum[:])
}

// DeleteAssets removes remote assets through the host's admin API.
func (g *CloudGateway) DeleteAssets(ctx context.Context, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return nil
	}

	q := url.Values{}
	for _, id := range assetIDs {
		q.Add("public_ids[]", id)
	}

	endpoint := fmt.Sprintf("%s/%s/resources/image/upload?%s", g.baseURL, g.cloudName, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.apiKey, g.apiSecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("media host delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("media host delete: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// AssetID derives the remote identifier of an uploaded photo: the trailing
// path segment of its URL stripped of the extension, under the configured
// folder.
func (g *CloudGateway) AssetID(photoURL string) string {
	name := path.Base(photoURL)
	name = strings.TrimSuffix(name, path.Ext(name))
	if g.folder == "" {
		return name
	}
	return g.folder + "/" + name
}
