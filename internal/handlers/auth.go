package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modulehub/modulehub-backend/internal/requestdata"
	"github.com/modulehub/modulehub-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
		return
	}
	if err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	user, token, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	// Mirror the token in a header for cookie-less clients.
	c.Header("Set-Auth-Token", token)
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"data": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
			"token": token,
		},
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.Session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if err := ah.authService.Logout(c.Request.Context(), rd.Session.Token); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

func (ah *AuthHandler) GetUser(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil || rd.Session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"userData": gin.H{
				"id":        rd.User.ID,
				"email":     rd.User.Email,
				"name":      rd.User.Name,
				"role":      rd.User.Role,
				"createdAt": rd.User.CreatedAt,
				"updatedAt": rd.User.UpdatedAt,
				"session":   rd.Session,
			},
		},
	})
}
