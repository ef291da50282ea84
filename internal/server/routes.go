package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/chalkline/internal/chat"
	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/llm"
)

// Submitter runs the assessment pipeline for a completed session.
type Submitter interface {
	Submit(ctx context.Context, messages []chat.Message) error
}

// chatRequest is the body of both the chat and submit endpoints: the
// client-held ordered message list.
type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// registerRoutes sets up all routes on the Gin router.
func registerRoutes(router *gin.Engine, cfg *config.Config, model llm.Client, pipeline Submitter) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/", handleIndex())
	router.GET("/api/assignment", handleAssignment(cfg))
	router.POST("/api/chat", handleChat(cfg, model))
	router.POST("/api/submit", handleSubmit(pipeline))
}

func handleIndex() gin.HandlerFunc {
	page, _ := assetsFS.ReadFile("assets/index.html")
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

// handleAssignment serves the static assignment record the UI renders.
// The tutor prompt stays server-side.
func handleAssignment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := cfg.Assignment
		c.JSON(http.StatusOK, gin.H{
			"student_name":    a.StudentName,
			"title":           a.Title,
			"type":            a.Type,
			"instructions":    a.Instructions,
			"opening_message": a.OpeningMessage,
		})
	}
}

// handleSubmit runs the full assessment pipeline synchronously. The caller
// blocks until persistence completes or fails; failures come back as one
// generic message.
func handleSubmit(pipeline Submitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := pipeline.Submit(c.Request.Context(), req.Messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transcript"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
