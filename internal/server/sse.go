package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/llm"
	"github.com/zulandar/chalkline/internal/relay"
)

// doneSentinel terminates every successful stream. The client reads frames
// until it sees this or an error frame.
const doneSentinel = "[DONE]"

// textFrame carries one delta downstream.
type textFrame struct {
	Text string `json:"text"`
}

// errorFrame is the terminal frame for a failed stream.
type errorFrame struct {
	Error string `json:"error"`
}

// handleChat opens a streaming completion for the posted conversation and
// relays each delta to the browser as an SSE frame, in arrival order.
func handleChat(cfg *config.Config, model llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		stream, err := model.Stream(c.Request.Context(), llm.Request{
			System:    cfg.Assignment.TutorPrompt,
			Messages:  req.Messages,
			MaxTokens: cfg.Model.StreamMaxTokens,
		})
		if err != nil {
			// Same terminal frame as a mid-stream failure; detail stays
			// server-side.
			writeFrame(c.Writer, errorFrame{Error: relay.GenericError})
			c.Writer.Flush()
			return
		}

		for evt := range relay.Run(c.Request.Context(), stream) {
			switch evt.Kind {
			case relay.KindText:
				writeFrame(c.Writer, textFrame{Text: evt.Text})
			case relay.KindError:
				writeFrame(c.Writer, errorFrame{Error: evt.Text})
			case relay.KindDone:
				fmt.Fprintf(c.Writer, "data: %s\n\n", doneSentinel)
			}
			c.Writer.Flush()
		}
	}
}

// writeFrame writes a single JSON-payload SSE frame.
func writeFrame(w io.Writer, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
