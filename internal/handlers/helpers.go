package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// caller returns the authenticated user or writes 401.
func caller(c *gin.Context) (auth.Context, bool) {
	a, ok := auth.FromGin(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
		return auth.Context{}, false
	}
	return a, true
}

// pathID parses a positive numeric path parameter or writes 400.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		invalidRequest(c, err)
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted. An
// empty body, chunked or not, leaves req at its zero value.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		invalidRequest(c, err)
		return false
	}
	return true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    httperr.Message("invalid_request"),
		"details":    err.Error(),
	})
}
