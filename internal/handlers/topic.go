package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type TopicHandler struct {
	log          *logger.Logger
	topicService services.TopicService
}

func NewTopicHandler(log *logger.Logger, topicService services.TopicService) *TopicHandler {
	return &TopicHandler{
		log:          log.With("handler", "TopicHandler"),
		topicService: topicService,
	}
}

func (th *TopicHandler) List(c *gin.Context) {
	topics, err := th.topicService.List(c.Request.Context())
	if err != nil {
		th.log.Error("List topics failed", "error", err)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": topics})
}

func (th *TopicHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
		return
	}
	topic, err := th.topicService.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": topic})
}

func (th *TopicHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	topic, err := th.topicService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		th.log.Error("Create topic failed", "error", err)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": topic})
}

func (th *TopicHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic id"})
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	topic, err := th.topicService.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		th.log.Error("Update topic failed", "error", err, "topic_id", id)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"topic": topic}})
}

func (th *TopicHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic id"})
		return
	}
	if err := th.topicService.Delete(c.Request.Context(), id); err != nil {
		th.log.Error("Delete topic failed", "error", err, "topic_id", id)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
