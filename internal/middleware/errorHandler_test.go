package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := map[string]struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		"BadRequest": {
			err:        errdef.NewBadRequest("title is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "title is required",
		},
		"Forbidden": {
			err:        errdef.NewForbidden("user 2 is not an administrator"),
			wantStatus: http.StatusForbidden,
			wantBody:   "user 2 is not an administrator",
		},
		"WrappedNotFound": {
			err:        fmt.Errorf("find post: %w", errdef.NewNotFound("post 9 not found")),
			wantStatus: http.StatusNotFound,
			wantBody:   "find post: post 9 not found",
		},
		"Duplicated": {
			err:        errdef.NewDuplicated("email taken"),
			wantStatus: http.StatusConflict,
			wantBody:   "email taken",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) {
				_ = c.Error(test.err)
			})

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.ServeHTTP(w, req)

			assert.Equal(t, test.wantStatus, w.Code)
			assert.Equal(t, test.wantBody, w.Body.String())
		})
	}
}

func TestErrorHandler_InternalErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CorrelationID(), ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("connection refused"))
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), w.Header().Get(CorrelationIDHeader))
}

func TestErrorHandler_KeepsStatusWrittenByHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("error parsing \"id\""))
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error parsing \"id\"", w.Body.String())
}

func TestErrorHandler_NoError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
