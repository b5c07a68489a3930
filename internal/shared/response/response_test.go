package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-tracking/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	AbortWithError(c, apperror.ErrForbidden)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body ApiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	assert.Equal(t, apperror.CodeForbidden, body.Error.Code)
}
