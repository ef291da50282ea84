// Package chunk splits long text into bounded pieces for stores that cap
// per-field content length.
package chunk

import "strings"

// Split cuts text into ordered chunks of at most max bytes whose
// concatenation reproduces text exactly. Cuts prefer the last newline in
// the window, but only when it falls in the second half; an early newline
// would otherwise produce a pathologically short chunk, so the cut falls
// back to the full window. max must be positive.
func Split(text string, max int) []string {
	var chunks []string
	remaining := text
	for len(remaining) > 0 {
		if len(remaining) <= max {
			chunks = append(chunks, remaining)
			break
		}
		cut := strings.LastIndexByte(remaining[:max+1], '\n')
		if cut*2 < max {
			cut = max
		}
		chunks = append(chunks, remaining[:cut])
		remaining = remaining[cut:]
	}
	return chunks
}
