package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type ModuleHandler struct {
	log           *logger.Logger
	moduleService services.ModuleService
}

func NewModuleHandler(log *logger.Logger, moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		log:           log.With("handler", "ModuleHandler"),
		moduleService: moduleService,
	}
}

type moduleRequest struct {
	Title    string    `json:"title"`
	Image    string    `json:"image"`
	Summary  string    `json:"summary"`
	Content  string    `json:"content"`
	TopicIDs *[]string `json:"topicIds"`
}

func (mr *moduleRequest) toInput(c *gin.Context) (services.ModuleInput, bool) {
	in := services.ModuleInput{
		Title:   mr.Title,
		Image:   mr.Image,
		Summary: mr.Summary,
		Content: mr.Content,
	}
	if mr.TopicIDs != nil {
		in.TopicIDs = make([]uuid.UUID, 0, len(*mr.TopicIDs))
		for _, raw := range *mr.TopicIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic id"})
				return in, false
			}
			in.TopicIDs = append(in.TopicIDs, id)
		}
	}
	return in, true
}

func (mh *ModuleHandler) List(c *gin.Context) {
	modules, err := mh.moduleService.List(c.Request.Context())
	if err != nil {
		mh.log.Error("List modules failed", "error", err)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": modules})
}

func (mh *ModuleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}
	module, err := mh.moduleService.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": module})
}

func (mh *ModuleHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Summary == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, summary, and content are required"})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	module, err := mh.moduleService.Create(c.Request.Context(), rd.User.ID, in)
	if err != nil {
		mh.log.Error("Create module failed", "error", err, "user_id", rd.User.ID)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": module})
}

func (mh *ModuleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid module id"})
		return
	}
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Summary == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, summary, and content are required"})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	module, err := mh.moduleService.Update(c.Request.Context(), id, in)
	if err != nil {
		mh.log.Error("Update module failed", "error", err, "module_id", id)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"module": module}})
}

func (mh *ModuleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid module id"})
		return
	}
	if err := mh.moduleService.Delete(c.Request.Context(), id); err != nil {
		mh.log.Error("Delete module failed", "error", err, "module_id", id)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
