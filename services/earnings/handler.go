package earnings

import (
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

func (s *Service) recordView(c *gin.Context) {
	var params RecordViewParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	entry, err := s.RecordView(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (s *Service) getBalance(c *gin.Context) {
	balance, err := s.GetBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "balance": balance})
}

func (s *Service) getLedger(c *gin.Context) {
	entries, err := s.GetLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Service) reconcile(c *gin.Context) {
	ok, err := s.Reconcile(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "consistent": ok})
}
