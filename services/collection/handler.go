package collection

import (
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

func (s *Service) listCollections(c *gin.Context) {
	colls, err := s.ListCollections(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": colls})
}

func (s *Service) getCollection(c *gin.Context) {
	coll, err := s.GetCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, coll)
}

func (s *Service) createCollection(c *gin.Context) {
	var params CreateCollectionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	coll, err := s.CreateCollection(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, coll)
}

func (s *Service) updateCollection(c *gin.Context) {
	var params UpdateCollectionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	coll, err := s.UpdateCollection(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, coll)
}

func (s *Service) deleteCollection(c *gin.Context) {
	if err := s.DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Service) addClip(c *gin.Context) {
	var params struct {
		ClipID string `json:"clip_id"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", err))
		return
	}

	item, err := s.AddClip(c.Request.Context(), c.Param("id"), params.ClipID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Service) listClips(c *gin.Context) {
	items, err := s.ListClips(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Service) recordView(c *gin.Context) {
	coll, err := s.RecordCollectionView(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, coll)
}
