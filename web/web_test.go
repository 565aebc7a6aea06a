package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocsPage(t *testing.T) {
	var buf bytes.Buffer

	err := RenderDocsPage(&buf, NewDocsPage("tok-1", "Acme & Sons", "https://docs.example.com/fetch/tok-1"))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Acme &amp; Sons")
	assert.Contains(t, html, `href="https://docs.example.com/fetch/tok-1"`)
	assert.Contains(t, html, `data-token="tok-1"`)
	assert.True(t, strings.Contains(html, `src="data:image/png;base64,`), "page should embed the QR code")
}

func TestRenderDocsPage_NoLender(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderDocsPage(&buf, NewDocsPage("tok-1", "", "/fetch/tok-1")))

	assert.NotContains(t, buf.String(), "Shared by")
}
