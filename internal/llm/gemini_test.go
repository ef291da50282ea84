package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/zulandar/chalkline/internal/chat"
)

func TestToContents_RoleMapping(t *testing.T) {
	msgs := []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
		{Role: chat.RoleUser, Content: "question"},
	}

	history, last, err := toContents(msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Role != "user" {
		t.Errorf("history[0].Role = %q, want user", history[0].Role)
	}
	if history[1].Role != "model" {
		t.Errorf("history[1].Role = %q, want model", history[1].Role)
	}
	if len(last) != 1 {
		t.Fatalf("len(last) = %d, want 1", len(last))
	}
	if txt, ok := last[0].(genai.Text); !ok || string(txt) != "question" {
		t.Errorf("last part = %#v, want Text(question)", last[0])
	}
}

func TestToContents_Empty(t *testing.T) {
	if _, _, err := toContents(nil); err == nil {
		t.Fatal("expected error for empty message list")
	}
}

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("first"),
				genai.Text("second"),
			}}},
		},
	}
	if got := FirstText(resp); got != "first" {
		t.Errorf("FirstText = %q, want first", got)
	}
}

func TestFirstText_NoText(t *testing.T) {
	if got := FirstText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("FirstText = %q, want empty", got)
	}
	if got := FirstText(nil); got != "" {
		t.Errorf("FirstText(nil) = %q, want empty", got)
	}
}
