package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetTokenBalance(c *gin.Context) {
	account := c.Param("account")
	balance, err := s.tokenSvc.BalanceOf(c.Request.Context(), s.db, account)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"account": account,
		"balance": balance,
	}})
}
