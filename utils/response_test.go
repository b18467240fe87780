package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	res := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(res)

	APIResponse(ctx, http.StatusForbidden, "error", "Security check verification failed", map[string]interface{}{
		"error_codes": []string{"invalid-input-response"},
	})

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"error"`)
	assert.Contains(t, res.Body.String(), "invalid-input-response")
}

func TestParseJSONResponse(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		res := &http.Response{
			Body: io.NopCloser(strings.NewReader(`{"success": true, "hostname": "example.com"}`)),
		}

		data, err := ParseJSONResponse(res)
		assert.NoError(t, err)
		assert.Equal(t, true, data["success"])
		assert.Equal(t, "example.com", data["hostname"])
	})

	t.Run("invalid body", func(t *testing.T) {
		res := &http.Response{
			Body: io.NopCloser(strings.NewReader("not json")),
		}

		_, err := ParseJSONResponse(res)
		assert.Error(t, err)
	})
}
