// README: Cloud list passthrough, the shape the map frontend fetches.
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudpicker/internal/http/middleware"
	"cloudpicker/internal/modules/cloud"
)

type CloudHandler struct {
	clouds LiveLister
}

func NewCloudHandler(clouds LiveLister) *CloudHandler {
	return &CloudHandler{clouds: clouds}
}

// List returns the upstream list as a bare JSON array.
func (h *CloudHandler) List(c *gin.Context) {
	clouds, err := h.clouds.FetchLive(c.Request.Context())
	if err != nil {
		log.Printf("%s listing clouds: %v", middleware.RequestID(c), err)
		writeError(c, http.StatusBadGateway, cloud.ErrDataFetch.Error())
		return
	}
	if clouds == nil {
		clouds = []cloud.Cloud{}
	}
	writeJSON(c, http.StatusOK, clouds)
}
