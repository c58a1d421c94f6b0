package handler

import (
	"errors"
	"strings"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DataBinder binds and validates the JSON body of the request into req. Every failed validation
// is listed in the returned bad request.
func DataBinder(c *gin.Context, req any) error {
	if c.ContentType() != gin.MIMEJSON {
		return errdef.NewUnsupportedMediaType("%s only accepts content of type %s", c.FullPath(), gin.MIMEJSON)
	}

	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		reasons := make([]string, len(validationErrors))
		for i, fieldError := range validationErrors {
			reasons[i] = describe(fieldError)
		}
		return errdef.NewBadRequest("invalid request: %s", strings.Join(reasons, "; "))
	}

	return errdef.NewBadRequest("malformed request body: %v", err)
}
