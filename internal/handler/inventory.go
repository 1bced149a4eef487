package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Masai2005/zero-app/internal/apierror"
	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/middleware"
	"github.com/Masai2005/zero-app/internal/service"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RecordMovement creates a manual stock movement (Stock In, Stock Out,
// Adjustment, Transfer, Damaged, Expired).
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RecordMovement(claims.Username, claims.Name, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
