package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intake/internal/model"
)

// BundleHandler serves the static bundle catalog.
type BundleHandler struct {
	catalog []model.Bundle
}

// NewBundleHandler creates a new bundle handler
func NewBundleHandler(catalog []model.Bundle) *BundleHandler {
	return &BundleHandler{catalog: catalog}
}

// List handles GET /api/v1/bundles
func (h *BundleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bundles": h.catalog,
		"count":   len(h.catalog),
	})
}
