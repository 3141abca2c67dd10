// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

// CatalogProvider hands out the session catalog once it is loaded.
type CatalogProvider interface {
	Catalog() (*cloud.Catalog, error)
}

// LiveLister returns the current upstream cloud list.
type LiveLister interface {
	FetchLive(ctx context.Context) ([]cloud.Cloud, error)
}

// PositionProvider is the server-side position, used when the visitor did
// not report one.
type PositionProvider interface {
	Current() types.UserPosition
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePickerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cloud.ErrDataFetch):
		writeError(c, http.StatusServiceUnavailable, cloud.ErrDataFetch.Error())
	case errors.Is(err, picker.ErrPositionUnavailable):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
