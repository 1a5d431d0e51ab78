package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"mocktest-service/internal/models"
	"mocktest-service/internal/selection"
	"mocktest-service/internal/service"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

// GenerateTest assembles and persists a mock test for the requesting
// user.
func (h *TestHandler) GenerateTest(c *gin.Context) {
	var config models.TestConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetHeader("X-User-ID")

	test, err := h.Service.GenerateMockTest(context.Background(), userID, config)
	if err != nil {
		c.JSON(assemblyStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, test)
}

func (h *TestHandler) GetTest(c *gin.Context) {
	id := c.Param("id")
	test, err := h.Service.GetTest(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.Service.ListTests(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tests)
}

// CreateSession starts an attempt at an existing test.
func (h *TestHandler) CreateSession(c *gin.Context) {
	testID := c.Param("id")
	userID := c.GetHeader("X-User-ID")

	sessionID, err := h.Service.CreateTestSession(context.Background(), userID, testID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID, "status": models.SessionStatusInProgress})
}

// assemblyStatus maps assembly failures onto HTTP statuses: bad
// requests for caller mistakes, 422 when the bank cannot supply the
// request, 500 otherwise.
func assemblyStatus(err error) int {
	var distErr *selection.InvalidDifficultyDistributionError
	var bankErr *selection.InsufficientQuestionBankError
	switch {
	case errors.Is(err, selection.ErrNoTrendData),
		errors.Is(err, selection.ErrNoConceptsForFilter),
		errors.As(err, &distErr):
		return http.StatusBadRequest
	case errors.As(err, &bankErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
