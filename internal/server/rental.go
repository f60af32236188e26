package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	rentaldomain "github.com/smallbiznis/derent/internal/rental/domain"
)

type rentDeviceRequest struct {
	DeviceID        int64  `json:"device_id"`
	Renter          string `json:"renter"`
	Payment         int64  `json:"payment"`
	DurationSeconds int64  `json:"duration_seconds"`
}

func (s *Server) RentDevice(c *gin.Context) {
	var req rentDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	caller := callerAccount(c)
	renter := strings.TrimSpace(req.Renter)
	if renter == "" {
		renter = caller
	}

	resp, err := s.rentalSvc.Rent(c.Request.Context(), rentaldomain.RentRequest{
		DeviceID:        req.DeviceID,
		Renter:          renter,
		Payment:         req.Payment,
		DurationSeconds: req.DurationSeconds,
		Caller:          caller,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type withdrawRequest struct {
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
}

func (s *Server) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.rentalSvc.Withdraw(c.Request.Context(), rentaldomain.WithdrawRequest{
		Caller:      callerAccount(c),
		Destination: strings.TrimSpace(req.Destination),
		Amount:      req.Amount,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) LatestOrderID(c *gin.Context) {
	id, err := s.rentalSvc.LatestOrderID(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"last_order_id": id}})
}

func (s *Server) GetOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.rentalSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserInfo(c *gin.Context) {
	resp, err := s.rentalSvc.UserInfo(c.Request.Context(), c.Param("account"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
