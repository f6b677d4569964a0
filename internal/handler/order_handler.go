package handler

import (
	"net/http"

	"github.com/efes-rota/rota-planner/internal/store"
	"github.com/gin-gonic/gin"
)

func (h *PlannerHandler) HandleAddOrder(c *gin.Context) {
	var rec store.OrderRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondError(c, http.StatusBadRequest, "invalid order: "+err.Error())
		return
	}
	o := rec.Order()
	o.ID = 0
	o.Route = h.engine.FixRouteOrder(o.Route)
	added, err := h.store.AddOrder(c.Request.Context(), o)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store.NewOrderRecord(added))
}

type productionRequest struct {
	Station  string `json:"station" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

func (h *PlannerHandler) HandleRecordProduction(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "station and a positive quantity are required")
		return
	}
	ctx := c.Request.Context()
	o, err := h.store.OrderByCode(ctx, c.Param("code"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.store.RecordProduction(ctx, o.ID, req.Station, req.Quantity); err != nil {
		respondStoreError(c, err)
		return
	}
	h.respondOrder(c, o.Code, http.StatusOK)
}

func (h *PlannerHandler) HandleCompleteStation(c *gin.Context) {
	ctx := c.Request.Context()
	o, err := h.store.OrderByCode(ctx, c.Param("code"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.store.CompleteStation(ctx, o.ID, c.Param("station")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.respondOrder(c, o.Code, http.StatusOK)
}

// HandleBreakage records broken pieces and returns the rework order.
func (h *PlannerHandler) HandleBreakage(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "station and a positive quantity are required")
		return
	}
	ctx := c.Request.Context()
	o, err := h.store.OrderByCode(ctx, c.Param("code"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	rework, err := h.store.ReportBreakage(ctx, o.ID, req.Station, req.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store.NewOrderRecord(rework))
}

func (h *PlannerHandler) respondOrder(c *gin.Context, code string, status int) {
	o, err := h.store.OrderByCode(c.Request.Context(), code)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(status, store.NewOrderRecord(o))
}
