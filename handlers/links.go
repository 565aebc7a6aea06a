package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/basit/pdf-proxy/audit"
	"github.com/basit/pdf-proxy/links"
	"github.com/basit/pdf-proxy/models"
	"github.com/basit/pdf-proxy/storage"
	"github.com/basit/pdf-proxy/web"
)

const internalErrorBody = "Internal Server Error"

type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*models.Link, error)
}

type FileFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

type EventLogger interface {
	LogView(ctx context.Context, link *models.Link, meta audit.RequestMeta) error
	LogDownload(ctx context.Context, link *models.Link, meta audit.RequestMeta) error
}

type LinkHandlerOptions struct {
	Resolver TokenResolver
	Fetcher  FileFetcher
	Events   EventLogger
	// PublicBaseURL prefixes the download URL on the landing page. Empty
	// derives it from the request.
	PublicBaseURL string
	Now           func() time.Time
}

// LinkHandler serves the landing page and the file download for a token.
type LinkHandler struct {
	resolver      TokenResolver
	fetcher       FileFetcher
	events        EventLogger
	publicBaseURL string
	now           func() time.Time
}

func NewLinkHandler(opts LinkHandlerOptions) *LinkHandler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LinkHandler{
		resolver:      opts.Resolver,
		fetcher:       opts.Fetcher,
		events:        opts.Events,
		publicBaseURL: opts.PublicBaseURL,
		now:           now,
	}
}

// DocsPage handles GET /docs/:token.
//
// Returns:
//   - 200 with the landing page
//   - 404 "Invalid link." for unknown tokens
//   - 410 "Link expired." for expired links
func (h *LinkHandler) DocsPage(c *gin.Context) {
	token := c.Param("token")
	ctx := c.Request.Context()

	link, err := h.resolver.Resolve(ctx, token)
	if err != nil {
		status, body := docsErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("token", token).Msg("docs_page failed")
		}
		c.String(status, body)
		return
	}

	if err := h.events.LogView(ctx, link, audit.RequestMetaFrom(c.Request, h.now())); err != nil {
		log.Warn().Err(err).Str("token", token).Msg("docs_page: failed to log view")
	}

	var page bytes.Buffer
	if err := web.RenderDocsPage(&page, web.NewDocsPage(token, link.Lender(), h.downloadURL(c, token))); err != nil {
		log.Error().Err(err).Str("token", token).Msg("docs_page: template render error")
		c.String(http.StatusInternalServerError, internalErrorBody)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// FetchPDF handles GET /fetch/:token.
//
// Returns:
//   - 200 with the PDF as an attachment
//   - 404 for unknown tokens
//   - 403 "Link expired" for expired links
//   - 500 for anything else
func (h *LinkHandler) FetchPDF(c *gin.Context) {
	token := c.Param("token")
	ctx := c.Request.Context()

	link, err := h.resolver.Resolve(ctx, token)
	if err != nil {
		h.fetchFailed(c, token, err)
		return
	}

	data, err := h.fetcher.Fetch(ctx, link.PdfPath)
	if err != nil {
		h.fetchFailed(c, token, err)
		return
	}

	if err := h.events.LogDownload(ctx, link, audit.RequestMetaFrom(c.Request, h.now())); err != nil {
		h.fetchFailed(c, token, err)
		return
	}
	log.Info().
		Str("token", token).
		Str("lender", link.Lender()).
		Str("recipient", link.Recipient()).
		Msg("download")

	writePDF(c, DownloadFilename(link), data)
}

func (h *LinkHandler) fetchFailed(c *gin.Context, token string, err error) {
	status, body := fetchErrorResponse(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("token", token).Msg("fetch_pdf failed")
	}
	if body == "" {
		c.AbortWithStatus(status)
		return
	}
	c.String(status, body)
}

func (h *LinkHandler) downloadURL(c *gin.Context, token string) string {
	base := h.publicBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/fetch/" + url.PathEscape(token)
}

func docsErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, links.ErrExpired):
		return http.StatusGone, "Link expired."
	case errors.Is(err, links.ErrNotFound):
		return http.StatusNotFound, "Invalid link."
	default:
		return http.StatusInternalServerError, internalErrorBody
	}
}

func fetchErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, links.ErrExpired):
		return http.StatusForbidden, "Link expired"
	case errors.Is(err, links.ErrNotFound):
		return http.StatusNotFound, ""
	case errors.Is(err, storage.ErrUpstreamFetch):
		return http.StatusInternalServerError, internalErrorBody
	default:
		return http.StatusInternalServerError, internalErrorBody
	}
}
