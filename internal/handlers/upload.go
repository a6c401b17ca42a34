package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type UploadHandler struct {
	log           *logger.Logger
	uploadService services.UploadService
}

func NewUploadHandler(log *logger.Logger, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		log:           log.With("handler", "UploadHandler"),
		uploadService: uploadService,
	}
}

func (uh *UploadHandler) Upload(c *gin.Context) {
	if c.ContentType() != "multipart/form-data" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be multipart/form-data"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	url, err := uh.uploadService.SaveProfileImage(c.Request.Context(), rd.User.ID, file)
	if err != nil {
		uh.log.Error("Upload failed", "error", err, "user_id", rd.User.ID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "success": true})
}
