// README: Map and spreadsheet exports of the visitor's current view.
package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	"cloudpicker/internal/http/middleware"
	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	catalog  CatalogProvider
	position PositionProvider
}

func NewExportHandler(catalog CatalogProvider, position PositionProvider) *ExportHandler {
	return &ExportHandler{catalog: catalog, position: position}
}

func (h *ExportHandler) GeoJSON(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	view := ctl.View()
	fc := render.GeoJSON(view, ctl.Distances())
	if b, ok := render.Bounds(view); ok {
		fc.BBox = geojson.NewBBox(b)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		log.Printf("%s encoding geojson: %v", middleware.RequestID(c), err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (h *ExportHandler) XLSX(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.WriteXLSX(&buf, ctl.View(), ctl.Distances()); err != nil {
		log.Printf("%s writing xlsx: %v", middleware.RequestID(c), err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="clouds.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) controller(c *gin.Context) (*picker.Controller, bool) {
	cat, ok := catalogOrError(c, h.catalog)
	if !ok {
		return nil, false
	}
	v := middleware.LoadVisitor(c)
	pos := v.UserPosition()
	if !pos.IsKnown() && h.position != nil {
		pos = h.position.Current()
	}
	return picker.NewController(cat, v.Filter, pos), true
}
