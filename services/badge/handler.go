package badge

import (
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

func (s *Service) applyBadge(c *gin.Context) {
	var params struct {
		BadgeType string `json:"badge_type"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	b, err := s.ApplyBadge(c.Request.Context(), c.Param("id"), params.BadgeType)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (s *Service) getUserBadges(c *gin.Context) {
	badges, err := s.GetUserBadges(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": badges})
}

func (s *Service) deleteBadge(c *gin.Context) {
	if err := s.DeleteBadge(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
