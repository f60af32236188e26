package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
)

type createDeviceRequest struct {
	ContentID    string `json:"content_id"`
	Category     int32  `json:"category"`
	PricePerHour int64  `json:"price_per_hour"`
}

func (s *Server) CreateDevice(c *gin.Context) {
	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.deviceSvc.Create(c.Request.Context(), devicedomain.CreateDeviceRequest{
		Owner:        callerAccount(c),
		ContentID:    strings.TrimSpace(req.ContentID),
		Category:     req.Category,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type modifyDeviceRequest struct {
	PricePerHour int64 `json:"price_per_hour"`
	Active       bool  `json:"active"`
}

func (s *Server) ModifyDevice(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req modifyDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.deviceSvc.Modify(c.Request.Context(), devicedomain.ModifyDeviceRequest{
		DeviceID:     id,
		Caller:       callerAccount(c),
		PricePerHour: req.PricePerHour,
		Active:       req.Active,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetDevice(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.deviceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDeviceIDs(c *gin.Context) {
	ids, err := s.deviceSvc.ListIDs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	c.JSON(http.StatusOK, gin.H{"data": ids})
}

func (s *Server) GetOwnerInfo(c *gin.Context) {
	resp, err := s.deviceSvc.OwnerInfo(c.Request.Context(), c.Param("account"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRequest
	}
	return id, nil
}
