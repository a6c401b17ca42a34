package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type BookmarkHandler struct {
	log             *logger.Logger
	bookmarkService services.BookmarkService
}

func NewBookmarkHandler(log *logger.Logger, bookmarkService services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		log:             log.With("handler", "BookmarkHandler"),
		bookmarkService: bookmarkService,
	}
}

func (bh *BookmarkHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	bookmarks, err := bh.bookmarkService.List(c.Request.Context(), rd.User.ID)
	if err != nil {
		bh.log.Error("List bookmarks failed", "error", err, "user_id", rd.User.ID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookmarks})
}

func (bh *BookmarkHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	var req struct {
		ModuleID string `json:"moduleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ModuleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Module ID is required"})
		return
	}
	moduleID, err := uuid.Parse(req.ModuleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid module id"})
		return
	}
	bookmark, err := bh.bookmarkService.Create(c.Request.Context(), rd.User.ID, moduleID)
	if err != nil {
		bh.log.Error("Create bookmark failed", "error", err, "user_id", rd.User.ID, "module_id", moduleID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": bookmark})
}

func (bh *BookmarkHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("moduleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid module id"})
		return
	}
	if err := bh.bookmarkService.Delete(c.Request.Context(), rd.User.ID, moduleID); err != nil {
		bh.log.Error("Delete bookmark failed", "error", err, "user_id", rd.User.ID, "module_id", moduleID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
