package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/chalkline/internal/config"
)

// modeLabel is the fixed tutor mode recorded in every transcript header.
const modeLabel = "Socratic Brainstorming"

// Transcript renders the full ordered message list as a plain-text session
// transcript. Output is deterministic for fixed inputs; at supplies the
// header date stamp.
func Transcript(messages []Message, a config.AssignmentConfig, at time.Time) string {
	lines := []string{
		"TUTORING SESSION TRANSCRIPT",
		fmt.Sprintf("Student: %s", a.StudentName),
		fmt.Sprintf("Assignment: %s", a.Title),
		fmt.Sprintf("Tutor Mode: %s", modeLabel),
		fmt.Sprintf("Date: %s", shortDate(at)),
		"",
		"---",
		"",
	}

	for _, msg := range messages {
		speaker := "TUTOR"
		if msg.Role == RoleUser {
			speaker = strings.ToUpper(a.StudentName)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, msg.Content))
		lines = append(lines, "")
	}

	lines = append(lines, "---")
	lines = append(lines, "END OF SESSION")

	return strings.Join(lines, "\n")
}

// shortDate formats a date as M/D/YYYY, without zero padding.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Month(), t.Day(), t.Year())
}
