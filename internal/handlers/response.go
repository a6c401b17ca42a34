package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/modulehub/modulehub-backend/internal/apierr"
)

// respondErr is the single place a service error becomes a transport status.
// Anything outside the apierr taxonomy collapses to a generic 500.
func respondErr(c *gin.Context, err error) {
	ae := apierr.From(err)
	c.JSON(ae.Status, gin.H{"error": ae.Msg})
}
