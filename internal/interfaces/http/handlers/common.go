// Package handlers contains the gin HTTP handlers for the answer
// analysis API. Handlers bind request DTOs, call the application
// service, and translate AppError codes into HTTP status codes.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// parsePagination reads page and page_size query parameters, falling
// back to page 1 / size 20 and capping the size at 100.
func parsePagination(c *gin.Context) common.Pagination {
	page := 1
	pageSize := 20

	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := c.Query("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return common.Pagination{Page: page, PageSize: pageSize}
}

func respondOK[T any](c *gin.Context, status int, data T) {
	c.JSON(status, common.NewSuccessResponse(data))
}

func respondPage[T any](c *gin.Context, data T, p common.Pagination) {
	c.JSON(http.StatusOK, common.NewPaginatedResponse(data, p))
}

// respondError maps the error's code onto an HTTP status. Codes
// without a mapping, and non-AppError values, surface as an opaque 500
// so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status, ok := errors.ErrorCodeHTTPStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		code = errors.ErrCodeInternal
		message = errors.ErrorCodeMessage[errors.ErrCodeInternal]
	}

	_ = c.Error(err)
	c.JSON(status, common.NewErrorResponse(string(code), message))
}

// respondBindError reports a malformed or incomplete request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(
		string(errors.ErrCodeBadRequest), "invalid request body: "+err.Error()))
}
