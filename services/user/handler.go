package user

import (
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

func (s *Service) getUser(c *gin.Context) {
	u, err := s.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (s *Service) updateProfile(c *gin.Context) {
	var params UpdateProfileParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	u, err := s.UpdateProfile(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (s *Service) followUser(c *gin.Context) {
	var params struct {
		FollowerID string `json:"follower_id"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	link, err := s.FollowUser(c.Request.Context(), params.FollowerID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (s *Service) unfollowUser(c *gin.Context) {
	if err := s.UnfollowUser(c.Request.Context(), c.Query("follower_id"), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Service) listOfficials(c *gin.Context) {
	officials, err := s.ListOfficials(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": officials})
}
