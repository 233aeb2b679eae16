package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/fixtures"
	"github.com/rpggio/policyatlas/internal/metrics"
	"github.com/rpggio/policyatlas/internal/sqlite"
	"github.com/rpggio/policyatlas/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is the REST record service on an in-memory database.
type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Service *casestudy.Service
	Metrics *metrics.Metrics
}

// New starts a record service seeded with the bundled case studies.
func New(t testing.TB) *TestServer {
	t.Helper()

	ts := NewEmpty(t)
	seed, err := fixtures.Seed()
	require.NoError(t, err)
	ts.Import(t, seed...)
	return ts
}

// NewEmpty starts a record service with no case studies.
func NewEmpty(t testing.TB) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	svc := casestudy.NewService(sqlite.NewCaseStudyRepository(db), nil)
	m := metrics.New()
	server := httptest.NewServer(transport.NewServer(transport.Config{
		Service: svc,
		Metrics: m,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		DB:      db,
		Service: svc,
		Metrics: m,
	}
}

// URL is the base URL of the REST API.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Import stores details, failing the test on any error.
func (ts *TestServer) Import(t testing.TB, details ...casestudy.Detail) {
	t.Helper()
	n, err := ts.Service.Import(context.Background(), details)
	require.NoError(t, err)
	require.Equal(t, len(details), n)
}
