// Package assess runs the post-session workflow: render the transcript,
// generate a rubric-based assessment, and persist both.
package assess

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zulandar/chalkline/internal/chat"
	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/llm"
	"github.com/zulandar/chalkline/internal/models"
	"github.com/zulandar/chalkline/internal/notify"
)

// ErrFailed is the only error Submit returns. Internal failure detail is
// logged at the pipeline boundary and never crosses it.
var ErrFailed = errors.New("assess: failed to save transcript")

// Saver persists a finished session to the document store.
type Saver interface {
	Save(ctx context.Context, pageID, transcript, assessment string) error
}

// Pipeline orchestrates the submission workflow. Steps run strictly in
// sequence with no partial-success reporting: if persistence fails after
// the assessment was generated, the assessment is discarded and the whole
// submission fails.
type Pipeline struct {
	llm        llm.Client
	saver      Saver
	archive    *gorm.DB
	notifier   notify.Notifier
	assignment config.AssignmentConfig
	maxTokens  int32
	now        func() time.Time
}

// Opts holds the pipeline's collaborators. Archive and Notifier are
// optional; when set they run best-effort after a successful save.
type Opts struct {
	LLM        llm.Client
	Saver      Saver
	Archive    *gorm.DB
	Notifier   notify.Notifier
	Assignment config.AssignmentConfig
	MaxTokens  int32
	Now        func() time.Time
}

// New creates a Pipeline.
func New(opts Opts) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		llm:        opts.LLM,
		saver:      opts.Saver,
		archive:    opts.Archive,
		notifier:   opts.Notifier,
		assignment: opts.Assignment,
		maxTokens:  opts.MaxTokens,
		now:        now,
	}
}

// Submit renders the transcript for the completed session, generates the
// assessment, and persists both. Any failure is logged and reported as
// ErrFailed.
func (p *Pipeline) Submit(ctx context.Context, messages []chat.Message) error {
	submittedAt := p.now()
	transcript := chat.Transcript(messages, p.assignment, submittedAt)

	assessment, err := p.llm.Complete(ctx, llm.Request{
		System: p.rubricPrompt(),
		Messages: []chat.Message{{
			Role: chat.RoleUser,
			Content: fmt.Sprintf(
				"Here is the tutoring session transcript:\n\n%s\n\nPlease provide the structured assessment.",
				transcript),
		}},
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		log.Printf("assess: assessment completion failed: %v", err)
		return ErrFailed
	}

	if err := p.saver.Save(ctx, p.assignment.NotionPageID, transcript, assessment); err != nil {
		log.Printf("assess: persistence failed: %v", err)
		return ErrFailed
	}

	p.record(messages, transcript, assessment, submittedAt)
	p.announce(ctx, messages, submittedAt)
	return nil
}

// rubricPrompt builds the fixed assessment instruction for this assignment.
func (p *Pipeline) rubricPrompt() string {
	return fmt.Sprintf(`You are an educational assessment specialist. You will read a tutoring session transcript and produce a structured assessment. The student's name is %s. The assignment was: %s.

Produce an assessment covering:
1. ENGAGEMENT & EFFORT - Did the student engage genuinely? Did they attempt ideas before asking for help?
2. INDEPENDENT THINKING - Did the student generate their own ideas and arguments?
3. KEY IDEAS DEVELOPED - List the main arguments or ideas the student produced
4. NUANCE - Did the student acknowledge complexity rather than taking a simplistic position?
5. AREAS FOR DEVELOPMENT - What could the student improve?
6. OVERALL - A brief summary of readiness and quality of thinking

Be specific and reference actual moments from the transcript.`,
		p.assignment.StudentName, p.assignment.Title)
}

// record archives the submission locally. Best-effort: errors are logged,
// not returned.
func (p *Pipeline) record(messages []chat.Message, transcript, assessment string, at time.Time) {
	if p.archive == nil {
		return
	}
	sub := models.Submission{
		ID:              uuid.New().String(),
		StudentName:     p.assignment.StudentName,
		AssignmentTitle: p.assignment.Title,
		MessageCount:    len(messages),
		TranscriptChars: len(transcript),
		AssessmentChars: len(assessment),
		NotionPageID:    p.assignment.NotionPageID,
		CreatedAt:       at,
	}
	if err := p.archive.Create(&sub).Error; err != nil {
		log.Printf("assess: archive submission: %v", err)
	}
}

// announce notifies the configured channel. Best-effort: errors are logged,
// not returned.
func (p *Pipeline) announce(ctx context.Context, messages []chat.Message, at time.Time) {
	if p.notifier == nil {
		return
	}
	err := p.notifier.Send(ctx, notify.Notice{
		Student:      p.assignment.StudentName,
		Assignment:   p.assignment.Title,
		MessageCount: len(messages),
		SubmittedAt:  at,
	})
	if err != nil {
		log.Printf("assess: submission notice: %v", err)
	}
}
