// Package handler exposes the planner and the order store over HTTP for the
// production dashboard.
package handler

import (
	"net/http"

	"github.com/efes-rota/rota-planner/internal/store"
	"github.com/efes-rota/rota-planner/sim/planner"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PlannerHandler struct {
	engine *planner.Engine
	store  store.Store
}

func NewPlannerHandler(engine *planner.Engine, st store.Store) *PlannerHandler {
	return &PlannerHandler{engine: engine, store: st}
}

// Register mounts every planner route on r.
func (h *PlannerHandler) Register(r gin.IRouter) {
	r.GET("/sequence", h.HandleSequence)
	r.GET("/forecast", h.HandleForecast)
	r.POST("/impact", h.HandleImpact)
	r.GET("/risk", h.HandleRisk)
	r.GET("/stations", h.HandleStations)
	r.PUT("/capacities/:station", h.HandleSetCapacity)
	r.POST("/routes/fix", h.HandleFixRoute)

	r.POST("/orders", h.HandleAddOrder)
	r.GET("/orders/:code/cr", h.HandleCriticalRatio)
	r.GET("/orders/:code/pull-forward", h.HandlePullForward)
	r.POST("/orders/:code/production", h.HandleRecordProduction)
	r.POST("/orders/:code/stations/:station/complete", h.HandleCompleteStation)
	r.POST("/orders/:code/breakage", h.HandleBreakage)
}

func (h *PlannerHandler) HandleSequence(c *gin.Context) {
	res, err := h.engine.Sequence(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSequenceResponse(res.Today, res.Plan, res.Summary))
}

func (h *PlannerHandler) HandleForecast(c *gin.Context) {
	f, err := h.engine.Forecast(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// HandleImpact answers what-if queries for a candidate order. The body uses
// the stored order record layout.
func (h *PlannerHandler) HandleImpact(c *gin.Context) {
	var rec store.OrderRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondError(c, http.StatusBadRequest, "invalid order: "+err.Error())
		return
	}
	candidate := rec.Order()
	candidate.Route = h.engine.FixRouteOrder(candidate.Route)
	res, err := h.engine.Impact(c.Request.Context(), *candidate)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PlannerHandler) HandleRisk(c *gin.Context) {
	rep, err := h.engine.Analyze(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *PlannerHandler) HandleStations(c *gin.Context) {
	statuses, err := h.engine.StationStatuses(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": statuses})
}

type capacityRequest struct {
	Capacity float64 `json:"capacity" binding:"required,gt=0"`
}

// HandleSetCapacity stores a new daily capacity and drops the capacity memo
// so the next pass sees it.
func (h *PlannerHandler) HandleSetCapacity(c *gin.Context) {
	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "capacity must be a positive number")
		return
	}
	station := c.Param("station")
	if err := h.store.SetCapacity(c.Request.Context(), station, req.Capacity); err != nil {
		respondStoreError(c, err)
		return
	}
	h.engine.InvalidateCapacities()
	logrus.Infof("capacity of %s set to %.1f m²/day", station, req.Capacity)
	c.JSON(http.StatusOK, gin.H{"station": station, "capacity": req.Capacity})
}

type fixRouteRequest struct {
	Stations []string `json:"stations" binding:"required"`
}

func (h *PlannerHandler) HandleFixRoute(c *gin.Context) {
	var req fixRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "stations list is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": h.engine.FixRouteOrder(req.Stations)})
}

func (h *PlannerHandler) HandleCriticalRatio(c *gin.Context) {
	code := c.Param("code")
	ratio, ok, err := h.engine.CriticalRatioByCode(c.Request.Context(), code)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "no active order "+code)
		return
	}
	c.JSON(http.StatusOK, ratio)
}

func (h *PlannerHandler) HandlePullForward(c *gin.Context) {
	code := c.Param("code")
	ok, reason, err := h.engine.CanPullForward(c.Request.Context(), code)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": code, "allowed": ok, "reason": reason})
}
