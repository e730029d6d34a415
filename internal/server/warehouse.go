package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
)

func (s *Server) ListWarehouses(c *gin.Context) {
	warehouses, err := s.warehouseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": warehouses})
}

func (s *Server) CreateWarehouse(c *gin.Context) {
	var req warehousedomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	warehouse, err := s.warehouseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": warehouse})
}

func (s *Server) GetWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	warehouse, err := s.warehouseSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": warehouse})
}

func (s *Server) UpdateWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req warehousedomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	warehouse, err := s.warehouseSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": warehouse})
}

func (s *Server) DeleteWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.warehouseSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) SetDefaultWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	warehouse, err := s.warehouseSvc.SetDefault(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": warehouse})
}

func pathID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return "", false
	}
	return id, true
}
