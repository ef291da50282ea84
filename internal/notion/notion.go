// Package notion persists finished tutoring sessions to a Notion page:
// summary properties on the page, full text as content blocks.
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/zulandar/chalkline/internal/chunk"
)

const (
	// propertyLimit is Notion's cap on rich_text property content. Longer
	// text is truncated; the full text lives in the page blocks.
	propertyLimit = 2000
	// blockChunkSize keeps each paragraph block under Notion's per-block cap.
	blockChunkSize = 1900
	// appendBatchSize is Notion's cap on blocks per append request.
	appendBatchSize = 100
)

// pageAPI abstracts the Notion page methods we use, enabling test mocks.
type pageAPI interface {
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// blockAPI abstracts the Notion block methods we use, enabling test mocks.
type blockAPI interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
	Delete(ctx context.Context, id notionapi.BlockID) (notionapi.Block, error)
	AppendChildren(ctx context.Context, id notionapi.BlockID, req *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
}

// Saver writes transcripts and assessments to Notion.
type Saver struct {
	pages  pageAPI
	blocks blockAPI
}

// New creates a Saver backed by the real Notion API.
func New(apiKey string) *Saver {
	client := notionapi.NewClient(notionapi.Token(apiKey))
	return &Saver{pages: client.Page, blocks: client.Block}
}

// SaverOpts injects mock APIs for tests.
type SaverOpts struct {
	Pages  pageAPI
	Blocks blockAPI
}

// NewWithAPIs creates a Saver with injected page and block APIs.
func NewWithAPIs(opts SaverOpts) *Saver {
	return &Saver{pages: opts.Pages, blocks: opts.Blocks}
}

// Save updates the page's summary properties, then replaces the page's
// content blocks with the full transcript and assessment. The replace is
// delete-then-append and is not atomic: a failure mid-sequence can leave
// the page empty or partially written.
func (s *Saver) Save(ctx context.Context, pageID, transcript, assessment string) error {
	if err := s.updateProperties(ctx, pageID, transcript, assessment); err != nil {
		return err
	}
	if err := s.clearBlocks(ctx, pageID); err != nil {
		return err
	}
	return s.appendBlocks(ctx, pageID, transcript, assessment)
}

// updateProperties sets the status and lossy text summaries on the page.
func (s *Saver) updateProperties(ctx context.Context, pageID, transcript, assessment string) error {
	_, err := s.pages.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			"Status": notionapi.SelectProperty{
				Select: notionapi.Option{Name: "Submitted"},
			},
			"Transcript": notionapi.RichTextProperty{
				RichText: richText(truncate(transcript, propertyLimit)),
			},
			"Agent Assessment": notionapi.RichTextProperty{
				RichText: richText(truncate(assessment, propertyLimit)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("notion: update page %s: %w", pageID, err)
	}
	return nil
}

// clearBlocks deletes every existing child block under the page.
func (s *Saver) clearBlocks(ctx context.Context, pageID string) error {
	pagination := &notionapi.Pagination{PageSize: appendBatchSize}
	for {
		resp, err := s.blocks.GetChildren(ctx, notionapi.BlockID(pageID), pagination)
		if err != nil {
			return fmt.Errorf("notion: list blocks of %s: %w", pageID, err)
		}
		for _, block := range resp.Results {
			if _, err := s.blocks.Delete(ctx, block.GetID()); err != nil {
				return fmt.Errorf("notion: delete block %s: %w", block.GetID(), err)
			}
		}
		if !resp.HasMore {
			return nil
		}
		pagination.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
}

// appendBlocks writes the full transcript and assessment as page content,
// batched to Notion's per-request block limit.
func (s *Saver) appendBlocks(ctx context.Context, pageID, transcript, assessment string) error {
	blocks := buildBlocks(transcript, assessment)
	for start := 0; start < len(blocks); start += appendBatchSize {
		end := start + appendBatchSize
		if end > len(blocks) {
			end = len(blocks)
		}
		_, err := s.blocks.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: blocks[start:end],
		})
		if err != nil {
			return fmt.Errorf("notion: append blocks to %s: %w", pageID, err)
		}
	}
	return nil
}

// buildBlocks lays out the page content: transcript heading and paragraphs,
// a divider, then assessment heading and paragraphs.
func buildBlocks(transcript, assessment string) []notionapi.Block {
	blocks := []notionapi.Block{heading("Tutoring Session Transcript")}
	for _, piece := range chunk.Split(transcript, blockChunkSize) {
		blocks = append(blocks, paragraph(piece))
	}
	blocks = append(blocks, divider(), heading("Agent Assessment"))
	for _, piece := range chunk.Split(assessment, blockChunkSize) {
		blocks = append(blocks, paragraph(piece))
	}
	return blocks
}

func heading(text string) notionapi.Block {
	return &notionapi.Heading1Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading1,
		},
		Heading1: notionapi.Heading{RichText: richText(text)},
	}
}

func paragraph(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{RichText: richText(text)},
	}
}

func divider() notionapi.Block {
	return &notionapi.DividerBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeDivider,
		},
		Divider: notionapi.Divider{},
	}
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: content}}}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
