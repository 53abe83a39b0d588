package clip

import (
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

func (s *Service) listClips(c *gin.Context) {
	clips, err := s.ListClips(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clips})
}

func (s *Service) listFeed(c *gin.Context) {
	clips, err := s.ListFeed(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clips})
}

func (s *Service) getClip(c *gin.Context) {
	clip, err := s.GetClip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clip)
}

func (s *Service) createClip(c *gin.Context) {
	var params CreateClipParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	clip, err := s.CreateClip(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, clip)
}

func (s *Service) updateClip(c *gin.Context) {
	var params UpdateClipParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	clip, err := s.UpdateClip(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clip)
}

func (s *Service) deleteClip(c *gin.Context) {
	if err := s.DeleteClip(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Service) recordView(c *gin.Context) {
	clip, err := s.RecordClipView(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clip)
}
