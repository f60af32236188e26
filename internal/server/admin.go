package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/derent/internal/audit/domain"
	rentaldomain "github.com/smallbiznis/derent/internal/rental/domain"
)

func (s *Server) GetPlatform(c *gin.Context) {
	resp, err := s.rentalSvc.Platform(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setFeeRequest struct {
	FeeBps int64 `json:"fee_bps"`
}

func (s *Server) SetFee(c *gin.Context) {
	var req setFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.rentalSvc.SetFee(c.Request.Context(), callerAccount(c), req.FeeBps); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type takeFeeRequest struct {
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
}

func (s *Server) TakeFee(c *gin.Context) {
	var req takeFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.rentalSvc.TakeFee(c.Request.Context(), rentaldomain.TakeFeeRequest{
		Caller:      callerAccount(c),
		Destination: strings.TrimSpace(req.Destination),
		Amount:      req.Amount,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		Action     string `form:"action"`
		TargetType string `form:"target_type"`
		TargetID   string `form:"target_id"`
		Limit      int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	logs, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditLogRequest{
		Action:     strings.TrimSpace(query.Action),
		TargetType: strings.TrimSpace(query.TargetType),
		TargetID:   strings.TrimSpace(query.TargetID),
		Limit:      query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
