// README: Picker handlers; each request replays the visitor's filter state through a Controller.
package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cloudpicker/internal/http/middleware"
	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/events"
	"cloudpicker/internal/modules/geo"
	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/types"
)

type PickerHandler struct {
	catalog  CatalogProvider
	position PositionProvider
	events   events.Publisher
}

func NewPickerHandler(catalog CatalogProvider, position PositionProvider, pub events.Publisher) *PickerHandler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &PickerHandler{catalog: catalog, position: position, events: pub}
}

type positionReq struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type providerReq struct {
	Provider string `json:"provider"`
}

// action mutates the controller; a non-nil error aborts without saving.
type action func(ctl *picker.Controller) error

func (h *PickerHandler) View(c *gin.Context) {
	h.handle(c, "", nil)
}

func (h *PickerHandler) Providers(c *gin.Context) {
	cat, ok := catalogOrError(c, h.catalog)
	if !ok {
		return
	}
	providers := cat.Providers()
	if providers == nil {
		providers = []string{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"providers": providers})
}

func (h *PickerHandler) SetPosition(c *gin.Context) {
	var req positionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	coord := types.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !geo.Valid(coord) {
		writeError(c, http.StatusBadRequest, "coordinate out of range")
		return
	}
	h.handleVisitor(c, "", func(v *middleware.Visitor, ctl *picker.Controller) error {
		v.Position = &coord
		ctl.SetPosition(types.Known(coord))
		return nil
	})
}

func (h *PickerHandler) ClearPosition(c *gin.Context) {
	h.handleVisitor(c, "", func(v *middleware.Visitor, ctl *picker.Controller) error {
		v.Position = nil
		ctl.SetPosition(h.positionFor(*v))
		return nil
	})
}

func (h *PickerHandler) SetProvider(c *gin.Context) {
	var req providerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	h.handle(c, events.ActionSetProvider, func(ctl *picker.Controller) error {
		ctl.SetProvider(req.Provider)
		return nil
	})
}

func (h *PickerHandler) Select(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "missing cloud name")
		return
	}
	h.handle(c, events.ActionSelect, func(ctl *picker.Controller) error {
		if !ctl.PickByIdentity(name) {
			log.Printf("%s no cloud named %q", middleware.RequestID(c), name)
		}
		return nil
	})
}

func (h *PickerHandler) Nearest(c *gin.Context) {
	h.handle(c, events.ActionNearest, func(ctl *picker.Controller) error {
		return ctl.PickNearestGlobal()
	})
}

func (h *PickerHandler) NearestInProvider(c *gin.Context) {
	h.handle(c, events.ActionNearestProvider, func(ctl *picker.Controller) error {
		return ctl.PickNearestWithinFilter()
	})
}

func (h *PickerHandler) Reset(c *gin.Context) {
	h.handle(c, events.ActionReset, func(ctl *picker.Controller) error {
		ctl.Reset()
		return nil
	})
}

func (h *PickerHandler) ResetSelection(c *gin.Context) {
	h.handle(c, events.ActionResetSelection, func(ctl *picker.Controller) error {
		ctl.ResetSelectionOnly()
		return nil
	})
}

func (h *PickerHandler) handle(c *gin.Context, act events.Action, fn action) {
	h.handleVisitor(c, act, func(_ *middleware.Visitor, ctl *picker.Controller) error {
		if fn == nil {
			return nil
		}
		return fn(ctl)
	})
}

func (h *PickerHandler) handleVisitor(c *gin.Context, act events.Action, fn func(*middleware.Visitor, *picker.Controller) error) {
	ctl, visitor, ok := h.controller(c)
	if !ok {
		return
	}
	if err := fn(&visitor, ctl); err != nil {
		writePickerError(c, err)
		return
	}

	visitor.Filter = ctl.Filter()
	if err := middleware.SaveVisitor(c, visitor); err != nil {
		log.Printf("%s saving session: %v", middleware.RequestID(c), err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if act != "" {
		h.publish(c, act, visitor)
	}
	writeJSON(c, http.StatusOK, ctl.View())
}

// controller rebuilds the visitor's Controller. It writes the error response
// itself and reports false when the catalog is unavailable.
func (h *PickerHandler) controller(c *gin.Context) (*picker.Controller, middleware.Visitor, bool) {
	cat, ok := catalogOrError(c, h.catalog)
	if !ok {
		return nil, middleware.Visitor{}, false
	}
	visitor := middleware.LoadVisitor(c)
	return picker.NewController(cat, visitor.Filter, h.positionFor(visitor)), visitor, true
}

func (h *PickerHandler) positionFor(v middleware.Visitor) types.UserPosition {
	if pos := v.UserPosition(); pos.IsKnown() {
		return pos
	}
	if h.position == nil {
		return types.UserPosition{}
	}
	return h.position.Current()
}

func (h *PickerHandler) publish(c *gin.Context, act events.Action, v middleware.Visitor) {
	e := events.Event{
		Action:   act,
		Provider: v.Filter.Provider,
		Selected: v.Filter.Selected,
		At:       time.Now().UTC(),
	}
	if err := h.events.Publish(c.Request.Context(), e); err != nil {
		log.Printf("%s %v", middleware.RequestID(c), err)
	}
}

// catalogOrError is shared with the export handlers.
func catalogOrError(c *gin.Context, p CatalogProvider) (*cloud.Catalog, bool) {
	cat, err := p.Catalog()
	if err != nil {
		writePickerError(c, err)
		return nil, false
	}
	return cat, true
}
