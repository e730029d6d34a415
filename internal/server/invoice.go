package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/bharatstack/gstbill/internal/invoice/domain"
)

func (s *Server) GenerateInvoice(c *gin.Context) {
	var req invoicedomain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	assembled, err := s.invoiceSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": assembled})
}

func (s *Server) ListInvoices(c *gin.Context) {
	req := invoicedomain.ListRequest{
		Status:  strings.TrimSpace(c.Query("status")),
		SortBy:  c.Query("sort_by"),
		OrderBy: c.Query("order_by"),
		Limit:   intQuery(c, "limit"),
	}
	if raw := strings.TrimSpace(c.Query("credit_notes")); raw != "" {
		isCreditNote := raw == "true"
		req.IsCreditNote = &isCreditNote
	}

	invoices, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	assembled, err := s.invoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assembled})
}

func (s *Server) CancelInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	inv, err := s.invoiceSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) CreateCreditNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := s.invoiceSvc.GenerateCreditNote(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": note})
}

func (s *Server) RenderInvoiceHTML(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	html, err := s.invoiceSvc.RenderInvoice(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	pdf, err := s.invoiceSvc.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) RenderShippingLabel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	label, err := s.invoiceSvc.RenderShippingLabel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", label)
}

func (s *Server) InvoiceStats(c *gin.Context) {
	stats, err := s.invoiceSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
