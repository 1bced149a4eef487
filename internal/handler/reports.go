package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Masai2005/zero-app/internal/apierror"
	"github.com/Masai2005/zero-app/internal/config"
	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/infra"
	"github.com/Masai2005/zero-app/internal/service"
)

type ReportsHandler struct {
	svc service.ReportService
	cfg *config.Config
}

func NewReportsHandler(svc service.ReportService, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{svc: svc, cfg: cfg}
}

// Sales returns the period summary as JSON.
func (h *ReportsHandler) Sales(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.SalesSummary(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesXLSX renders the period summary and sale rows as a workbook and
// streams it back.
func (h *ReportsHandler) SalesXLSX(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	report, err := h.svc.SalesSummary(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	sales, err := h.svc.SalesInPeriod(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	path, err := infra.ExportSalesXLSX(report, sales, h.cfg.ExportStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render report"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
