package textdown

import "github.com/alnah/go-textdown/internal/pipeline"

// Render converts Textile-style markup to an HTML fragment.
// It is safe for concurrent use and returns "" for blank input.
func Render(input string) string {
	return pipeline.Render(input)
}
