package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
)

func (s *Server) GetProfile(c *gin.Context) {
	profile, err := s.merchantSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (s *Server) UpsertProfile(c *gin.Context) {
	var req merchantdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	profile, err := s.merchantSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
