package handler

import (
	"errors"
	"strconv"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/gin-gonic/gin"
)

// GetPathParameter parses the named path parameter as a record id. A malformed id is added to c as
// a bad request and ok is false.
func GetPathParameter(c *gin.Context, name string) (uint, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("invalid path parameter %q: %v", name, err))
		return 0, false
	}
	return id, true
}

// GetOptionalQueryID parses the named query parameter as a record id. present is false if the
// parameter wasn't sent. A malformed id is added to c as a bad request and ok is false.
func GetOptionalQueryID(c *gin.Context, name string) (id uint, present bool, ok bool) {
	value, present := c.GetQuery(name)
	if !present || value == "" {
		return 0, false, true
	}

	id, err := parseID(value)
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("invalid query parameter %q: %v", name, err))
		return 0, true, false
	}
	return id, true, true
}

// GetRequiredQuery returns the named query parameter. A missing or empty value is added to c as a
// bad request and ok is false.
func GetRequiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		_ = c.Error(errdef.NewBadRequest("query parameter %q is required", name))
		return "", false
	}
	return value, true
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("ids start at 1")
	}
	return uint(id), nil
}
