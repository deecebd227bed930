package validation

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAs_Wrapped(t *testing.T) {
	err := fmt.Errorf("create dish: %w", New("name", "name is required"))

	ve, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "name: name is required", ve.Error())

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.True(t, Abort(c, New("price", "must not be negative")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"price"`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	assert.False(t, Abort(c2, errors.New("db down")))
}
