package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mocktest-service/internal/models"
	"mocktest-service/internal/service"
)

type ConceptHandler struct {
	Service *service.ConceptService
}

func NewConceptHandler(s *service.ConceptService) *ConceptHandler {
	return &ConceptHandler{Service: s}
}

func (h *ConceptHandler) ListConcepts(c *gin.Context) {
	concepts, err := h.Service.ListConcepts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, concepts)
}

func (h *ConceptHandler) GetConcept(c *gin.Context) {
	id := c.Param("id")
	concept, err := h.Service.GetConcept(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Concept not found"})
		return
	}
	c.JSON(http.StatusOK, concept)
}

func (h *ConceptHandler) CreateConcept(c *gin.Context) {
	var concept models.Concept
	if err := c.ShouldBindJSON(&concept); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateConcept(context.Background(), &concept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, concept)
}

func (h *ConceptHandler) UpdateConcept(c *gin.Context) {
	id := c.Param("id")
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateConcept(context.Background(), id, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *ConceptHandler) DeleteConcept(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteConcept(context.Background(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
