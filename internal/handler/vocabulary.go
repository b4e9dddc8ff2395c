package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
	"github.com/mdanassaif/bigNweirdwords/internal/sample"
	"github.com/mdanassaif/bigNweirdwords/pkg/parser"
)

const (
	errInvalidInput     = "Invalid exam input"
	errProcessingFailed = "Failed to process exam vocabulary."
)

// Runner processes one vocabulary batch. *app.App satisfies it.
type Runner interface {
	Run(ctx context.Context, req models.LookupRequest) (*models.LookupResult, error)
}

type VocabularyHandler struct {
	runner Runner
	log    *logger.Logger
}

func NewVocabularyHandler(runner Runner, log *logger.Logger) *VocabularyHandler {
	return &VocabularyHandler{runner: runner, log: log}
}

// DefineRequest is the body of POST /api/vocabulary. Pointers tell a
// missing field apart from a zero value.
type DefineRequest struct {
	Text     *string `json:"text"`
	WordSize *int    `json:"wordSize"`
}

// Define extracts the long words of the submitted text and returns their
// definitions.
func (h *VocabularyHandler) Define(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": fmt.Sprintf("Method %s Not Allowed", c.Request.Method)})
		return
	}

	var req DefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("rejecting malformed vocabulary request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput})
		return
	}
	if req.Text == nil || *req.Text == "" || req.WordSize == nil || *req.WordSize == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput})
		return
	}

	result, err := h.run(c.Request.Context(), models.LookupRequest{
		Text:          *req.Text,
		MinWordLength: *req.WordSize,
	})
	if err != nil {
		if errors.Is(err, parser.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidInput})
			return
		}
		h.log.Error("vocabulary processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   errProcessingFailed,
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// run converts a panic in the batch into an error.
func (h *VocabularyHandler) run(ctx context.Context, req models.LookupRequest) (result *models.LookupResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.runner.Run(ctx, req)
}

// SampleText returns a random academic passage.
func (h *VocabularyHandler) SampleText(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": sample.Random(nil)})
}
