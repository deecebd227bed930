package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func New(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// As unwraps a ValidationError anywhere in err's chain.
func As(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return ValidationError{}, false
}

// Abort writes a 400 with the offending field when err is a ValidationError
// and reports whether it did.
func Abort(c *gin.Context, err error) bool {
	ve, ok := As(err)
	if !ok {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": ve.Message,
		"field": ve.Field,
	})
	return true
}
