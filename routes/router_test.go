package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestRouter_PanickedRequestIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	gin.SetMode(gin.TestMode)
	router := NewRouter(nil)
	router.GET("/fetch/:token", func(c *gin.Context) { panic("boom") })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/fetch/tok", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	out := buf.String()
	assert.Contains(t, out, `"message":"recovered from panic"`)
	assert.Contains(t, out, `"message":"request"`)
	assert.Contains(t, out, `"status":500`)
	assert.Contains(t, out, `"path":"/fetch/tok"`)
}
