package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basit/pdf-proxy/models"
)

// DownloadFilename picks the attachment name: the link's own filename, else
// the lender name, else "document".
func DownloadFilename(link *models.Link) string {
	if link.Filename != nil && *link.Filename != "" {
		return *link.Filename
	}
	if lender := link.Lender(); lender != "" {
		return lender + ".pdf"
	}
	return "document.pdf"
}

// writePDF sends data as a PDF attachment named filename.
func writePDF(c *gin.Context, filename string, data []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "application/pdf", data)
}
