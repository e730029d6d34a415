package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
)

func (s *Server) ListHSNMappings(c *gin.Context) {
	mappings, err := s.hsnSvc.List(c.Request.Context(), hsndomain.ListRequest{
		ProductID:    c.Query("product_id"),
		CollectionID: c.Query("collection_id"),
		SortBy:       c.Query("sort_by"),
		OrderBy:      c.Query("order_by"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mappings})
}

func (s *Server) CreateHSNMapping(c *gin.Context) {
	var req hsndomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	mapping, err := s.hsnSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": mapping})
}

func (s *Server) GetHSNMapping(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	mapping, err := s.hsnSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mapping})
}

func (s *Server) UpdateHSNMapping(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req hsndomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = id

	mapping, err := s.hsnSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mapping})
}

func (s *Server) DeleteHSNMapping(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.hsnSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
