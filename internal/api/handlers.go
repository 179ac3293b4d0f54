package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grupomymce/sitemap-tools/internal/audit"
	"github.com/grupomymce/sitemap-tools/internal/linkcheck"
	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/sitemap"
	"github.com/grupomymce/sitemap-tools/internal/storage"
)

// Site bundles the tools the API runs against one site root.
type Site struct {
	Root        string
	SitemapPath string
	Generator   *sitemap.Generator
	Verifier    *sitemap.Verifier
	Auditor     *audit.Auditor
	Checker     *linkcheck.Checker
}

type Handler struct {
	site  Site
	store storage.Store
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type VerifyResponse struct {
	*sitemap.Report
	InSync    bool   `json:"in_sync"`
	ReadError string `json:"read_error,omitempty"`
}

func NewHandler(s Site, store storage.Store) *Handler {
	return &Handler{site: s, store: store}
}

func (h *Handler) ListPages(c *gin.Context) {
	urls, err := h.site.Generator.URLs()
	if err != nil {
		log.Printf("Failed to collect pages: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to collect pages"})
		return
	}

	if urls == nil {
		urls = []models.URL{}
	}

	c.JSON(http.StatusOK, urls)
}

func (h *Handler) RenderSitemap(c *gin.Context) {
	urls, err := h.site.Generator.URLs()
	if err != nil {
		log.Printf("Failed to collect pages: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to collect pages"})
		return
	}

	data, err := sitemap.Render(urls)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render sitemap"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (h *Handler) Generate(c *gin.Context) {
	result, err := h.site.Generator.Generate(log.Writer(), h.site.SitemapPath)
	if err != nil {
		log.Printf("Failed to generate sitemap: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate sitemap"})
		return
	}

	run := result.Run(h.site.Root)
	h.record(c, run)

	c.JSON(http.StatusCreated, run)
}

func (h *Handler) Verify(c *gin.Context) {
	report, err := h.site.Verifier.Verify(h.site.SitemapPath)
	if err != nil {
		log.Printf("Failed to verify sitemap: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify sitemap"})
		return
	}

	h.record(c, report.Run(h.site.Root))

	resp := VerifyResponse{Report: report, InSync: report.InSync()}
	if report.ReadErr != nil {
		resp.ReadError = report.ReadErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Audit(c *gin.Context) {
	report, err := h.site.Auditor.Audit()
	if err != nil {
		log.Printf("Failed to audit site: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to audit site"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) LinkCheck(c *gin.Context) {
	report, err := h.site.Checker.Check(c.Request.Context())
	if err != nil {
		log.Printf("Failed to check links: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check links"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is disabled"})
		return
	}

	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	runs, err := h.store.ListRuns(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch runs"})
		return
	}

	if runs == nil {
		runs = []*models.Run{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  runs,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Run history is disabled"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid run ID"})
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch run"})
		return
	}

	if run == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// record saves run when history is enabled. A failed save is logged and
// does not fail the request.
func (h *Handler) record(c *gin.Context, run *models.Run) {
	if h.store == nil {
		return
	}
	if err := h.store.SaveRun(c.Request.Context(), run); err != nil {
		log.Printf("Failed to record %s run: %v", run.Kind, err)
	}
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
