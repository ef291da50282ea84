package llm

import (
	"context"
	"fmt"
	"io"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/zulandar/chalkline/internal/chat"
)

// Gemini implements Client using the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client for the named model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// generativeModel builds a configured model handle for one call.
func (g *Gemini) generativeModel(req Request) *genai.GenerativeModel {
	gm := g.client.GenerativeModel(g.model)
	if req.System != "" {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.MaxTokens > 0 {
		gm.SetMaxOutputTokens(req.MaxTokens)
	}
	return gm
}

// toContents converts chat messages (all but the last) into Gemini history
// and returns the final message's parts as the outgoing turn.
func toContents(messages []chat.Message) (history []*genai.Content, last []genai.Part, err error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("llm: empty message list")
	}
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == chat.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	last = []genai.Part{genai.Text(messages[len(messages)-1].Content)}
	return history, last, nil
}

// Stream opens a streaming completion for the conversation.
func (g *Gemini) Stream(ctx context.Context, req Request) (Stream, error) {
	history, last, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}

	cs := g.generativeModel(req).StartChat()
	cs.History = history
	iter := cs.SendMessageStream(ctx, last...)
	return &geminiStream{iter: iter}, nil
}

// Complete issues a single-shot completion and projects out the first text
// part. A response with no text part yields "" without error.
func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	history, last, err := toContents(req.Messages)
	if err != nil {
		return "", err
	}

	cs := g.generativeModel(req).StartChat()
	cs.History = history
	resp, err := cs.SendMessage(ctx, last...)
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	return FirstText(resp), nil
}

// FirstText returns the first text part of a response, or "" if the
// response carries no text-bearing part.
func FirstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt)
			}
		}
	}
	return ""
}

// geminiStream adapts the Gemini response iterator to the Stream interface.
// One upstream response may carry several text parts; they are queued and
// handed out one delta at a time in arrival order.
type geminiStream struct {
	iter    *genai.GenerateContentResponseIterator
	pending []string
}

func (s *geminiStream) Recv() (string, error) {
	for len(s.pending) == 0 {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					s.pending = append(s.pending, string(txt))
				}
			}
		}
	}
	delta := s.pending[0]
	s.pending = s.pending[1:]
	return delta, nil
}
