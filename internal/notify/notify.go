// Package notify delivers submission notices to chat platforms. Delivery is
// best-effort: callers log failures and never surface them to the student.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Notice describes one submitted tutoring session.
type Notice struct {
	Student      string
	Assignment   string
	MessageCount int
	SubmittedAt  time.Time
}

// Notifier is the interface platform-specific implementations satisfy.
type Notifier interface {
	// Send delivers the notice to the configured channel.
	Send(ctx context.Context, n Notice) error
}

// headline renders the one-line summary shared by all platforms.
func headline(n Notice) string {
	return fmt.Sprintf("%s submitted %q", n.Student, n.Assignment)
}

// detail renders the notice body shared by all platforms.
func detail(n Notice) string {
	return fmt.Sprintf("%d messages, submitted %s",
		n.MessageCount, n.SubmittedAt.Format(time.RFC3339))
}
