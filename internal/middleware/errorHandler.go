package middleware

import (
	"fmt"
	"net/http"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error added to the context into a plain text response. Handlers
// which already wrote a status other than 200 keep it.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}
		if c.Writer.Status() != http.StatusOK {
			_, _ = c.Writer.WriteString(err.Error())
			return
		}

		status := errdef.Status(err.Err)
		if status != http.StatusInternalServerError {
			c.String(status, err.Error())
			return
		}

		id, _ := GetCorrelationID(c.Request.Context())
		c.String(status, fmt.Sprintf("something went wrong on our side, please report correlation id %q", id))
	}
}
