package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Masai2005/zero-app/internal/apierror"
	"github.com/Masai2005/zero-app/internal/config"
	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/infra"
	"github.com/Masai2005/zero-app/internal/middleware"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/service"
)

type SalesHandler struct {
	svc   service.SaleService
	sales repository.SaleRepository
	cfg   *config.Config
}

func NewSalesHandler(svc service.SaleService, sales repository.SaleRepository, cfg *config.Config) *SalesHandler {
	return &SalesHandler{svc: svc, sales: sales, cfg: cfg}
}

// Complete runs the full sale completion protocol: stock check, sale append,
// stock persist, movement records.
func (h *SalesHandler) Complete(c *gin.Context) {
	var req dto.CompleteSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Complete(claims.Username, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt renders the sale as a PDF receipt and streams it back.
func (h *SalesHandler) Receipt(c *gin.Context) {
	sale, err := h.sales.FindByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	path, err := infra.GenerateReceiptPDF(sale, h.cfg.CompanyName, h.cfg.ExportStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render receipt"))
		return
	}
	c.FileAttachment(path, "receipt_"+sale.InvoiceNumber+".pdf")
}
