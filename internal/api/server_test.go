package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grupomymce/sitemap-tools/internal/audit"
	"github.com/grupomymce/sitemap-tools/internal/linkcheck"
	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/site"
	"github.com/grupomymce/sitemap-tools/internal/sitemap"
	"github.com/grupomymce/sitemap-tools/internal/storage"
	"github.com/grupomymce/sitemap-tools/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomain = "https://www.grupomymce.com"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestSite(t *testing.T) Site {
	t.Helper()
	root := testutil.WriteTree(t, map[string]string{
		"index.html":      testutil.Page("Inicio", `<h1>Inicio</h1><a href="/about">Nosotros</a>`),
		"about.html":      testutil.Page("Nosotros", `<h1>Nosotros</h1><a href="/blog/">Blog</a>`),
		"blog/index.html": testutil.Page("Blog", `<h1>Blog</h1><a href="/">Inicio</a>`),
		"404.html":        testutil.Page("404", ""),
	})

	gen := site.NewCollector(root, []string{"node_modules"}, []string{"404.html", "google"})
	ver := site.NewCollector(root, []string{"node_modules"}, []string{"404.html"})
	clock := func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }

	return Site{
		Root:        root,
		SitemapPath: filepath.Join(root, "sitemap.xml"),
		Generator:   sitemap.NewGenerator(gen, testDomain).WithClock(clock),
		Verifier:    sitemap.NewVerifier(ver, testDomain),
		Auditor:     audit.NewAuditor(gen, testDomain),
		Checker:     linkcheck.NewChecker(gen, 2),
	}
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewStore("sqlite3", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func do(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestListPages(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/api/pages")
	require.Equal(t, http.StatusOK, w.Code)

	var urls []models.URL
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &urls))
	assert.ElementsMatch(t, []models.URL{
		{Loc: testDomain + "/", LastMod: "2026-10-19", Priority: "1.00"},
		{Loc: testDomain + "/about", LastMod: "2026-10-19", Priority: "0.80"},
		{Loc: testDomain + "/blog/", LastMod: "2026-10-19", Priority: "0.80"},
	}, urls)
}

func TestRenderSitemap(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/api/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.ElementsMatch(t, []string{testDomain + "/", testDomain + "/about", testDomain + "/blog/"},
		sitemap.ExtractLocs(w.Body.String()))
}

func TestGenerateThenVerify(t *testing.T) {
	st := newTestSite(t)
	store := newTestStore(t)
	s := NewServer(0, st, store)

	w := do(s, http.MethodGet, "/api/verify")
	require.Equal(t, http.StatusOK, w.Code)

	var before VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))
	assert.False(t, before.InSync)
	assert.NotEmpty(t, before.ReadError)
	assert.Len(t, before.Missing, 3)
	assert.Contains(t, w.Body.String(), `"extra":[]`)

	w = do(s, http.MethodPost, "/api/generate")
	require.Equal(t, http.StatusCreated, w.Code)
	_, err := os.Stat(st.SitemapPath)
	require.NoError(t, err)

	w = do(s, http.MethodGet, "/api/verify")
	require.Equal(t, http.StatusOK, w.Code)

	var after VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.True(t, after.InSync)
	assert.Empty(t, after.ReadError)
	assert.Equal(t, 3, after.Actual)
	assert.Contains(t, w.Body.String(), `"missing":[]`)
	assert.Contains(t, w.Body.String(), `"extra":[]`)

	w = do(s, http.MethodGet, "/api/runs?limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data  []*models.Run `json:"data"`
		Page  int           `json:"page"`
		Limit int           `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 1, page.Page)

	w = do(s, http.MethodGet, "/api/runs/"+page.Data[0].ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRuns_Disabled(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/api/runs")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRun_Errors(t *testing.T) {
	s := NewServer(0, newTestSite(t), newTestStore(t))

	w := do(s, http.MethodGet, "/api/runs/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/runs/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAudit(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/api/audit")
	require.Equal(t, http.StatusOK, w.Code)

	var report audit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Summary.TotalFiles)
	assert.Zero(t, report.Summary.FilesWithIssues)
}

func TestLinkCheck(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodPost, "/api/linkcheck")
	require.Equal(t, http.StatusOK, w.Code)

	var report linkcheck.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.OK())
}

func TestServesSiteWithCleanURLs(t *testing.T) {
	s := NewServer(0, newTestSite(t), nil)

	w := do(s, http.MethodGet, "/about")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Nosotros</title>")

	w = do(s, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
