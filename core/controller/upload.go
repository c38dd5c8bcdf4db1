package controller

import (
	"campusflow/core/errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadUpload reads a multipart file field, capped at limit bytes.
func ReadUpload(c echo.Context, field string, limit int64) ([]byte, *echo.HTTPError) {
	tooLarge := fmt.Sprintf("File exceeds %d MB", limit>>20)

	fh, err := c.FormFile(field)
	if err != nil {
		return nil, NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidRequestData, fmt.Sprintf("Missing %s upload", field))
	}
	if fh.Size > limit {
		return nil, NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidInput, tooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidRequestData, "Could not read upload")
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidRequestData, "Could not read upload")
	}
	if int64(len(raw)) > limit {
		return nil, NewErrorResponse(http.StatusBadRequest, errors.ErrInvalidInput, tooLarge)
	}
	return raw, nil
}
