package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": rd.User}})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	updated, err := uh.userService.UpdateProfile(c.Request.Context(), rd.User.ID, req.Name, req.Image)
	if err != nil {
		uh.log.Error("Update profile failed", "error", err, "user_id", rd.User.ID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (uh *UserHandler) ListLastSeen(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	rows, err := uh.userService.ListLastSeen(c.Request.Context(), rd.User.ID)
	if err != nil {
		uh.log.Error("List last seen failed", "error", err, "user_id", rd.User.ID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"lastSeen": rows}})
}

func (uh *UserHandler) TouchLastSeen(c *gin.Context) {
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
	row, err := uh.userService.TouchLastSeen(c.Request.Context(), rd.User.ID, moduleID)
	if err != nil {
		uh.log.Error("Touch last seen failed", "error", err, "user_id", rd.User.ID, "module_id", moduleID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"lastSeen": row}})
}
