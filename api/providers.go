package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/pawcare/internal/repository"
	"github.com/Domenick1991/pawcare/internal/service/providers"
	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	service providers.ProviderUseCase
}

func NewProviderHandler(service providers.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{service: service}
}

func (h *ProviderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *ProviderHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch providers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": list})
}

func (h *ProviderHandler) get(c *gin.Context) {
	provider, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}
