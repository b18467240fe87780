package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siteshield/turnstile/types"
)

// APIResponse writes a JSON response with the generic envelope
func APIResponse(ctx *gin.Context, httpCode int, status string, message string, data interface{}) {
	ctx.JSON(httpCode, types.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ParseJSONResponse decodes the body of an HTTP response into a map
func ParseJSONResponse(res *http.Response) (map[string]interface{}, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	return data, nil
}
