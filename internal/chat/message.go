// Package chat defines the conversation types shared across Chalkline and
// renders session transcripts.
package chat

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a tutoring conversation. The client owns the
// ordered message list for a session and only ever appends to it.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
