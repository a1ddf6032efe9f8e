package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/api"
	"github.com/marc/albumshare/internal/config"
	"github.com/marc/albumshare/internal/domain"
	repoPostgres "github.com/marc/albumshare/internal/repository/postgres"
	"github.com/marc/albumshare/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory sqlite database with the schema
// migrated. Every call gets its own database, so tests are isolated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// TestConfig returns a config suitable for tests: generous rate limits and a
// fixed signing secret.
func TestConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Environment:       "development",
		JWTSecret:         "test-secret",
		MediaFolder:       "social-app",
		AuthRatePerSecond: 1000,
		AuthRateBurst:     1000,
	}
}

// FakeGateway is an in-memory stand-in for the media host. It records the
// asset ids it was asked to delete and can be told to fail.
type FakeGateway struct {
	mu        sync.Mutex
	Deleted   []string
	DeleteErr error
	Folder    string
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{Folder: "social-app"}
}

func (g *FakeGateway) SignUpload(params url.Values) string {
	return "fake-signature"
}

func (g *FakeGateway) DeleteAssets(ctx context.Context, assetIDs []string) error {
	if g.DeleteErr != nil {
		return g.DeleteErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Deleted = append(g.Deleted, assetIDs...)
	return nil
}

func (g *FakeGateway) AssetID(photoURL string) string {
	name := path.Base(photoURL)
	name = strings.TrimSuffix(name, path.Ext(name))
	return g.Folder + "/" + name
}

// TestServer runs the full router over an in-memory database and a fake
// media gateway.
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Services *service.Services
	Gateway  *FakeGateway
	Config   *config.Config
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := NewTestDB(t)
	cfg := TestConfig()
	gateway := NewFakeGateway()

	repos := repoPostgres.NewRepositories(db)
	services := service.NewServices(repos, cfg, gateway, nil, nil)
	router := api.NewRouter(services, gateway, cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{
		Server:   srv,
		DB:       db,
		Services: services,
		Gateway:  gateway,
		Config:   cfg,
	}
}

func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api" + path
}

// SessionCookie issues a token for user and wraps it in the session cookie.
func (ts *TestServer) SessionCookie(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()

	token, err := ts.Services.Auth.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return &http.Cookie{Name: "token", Value: token, Path: "/"}
}
