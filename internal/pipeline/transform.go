package pipeline

import "strings"

// ImageRef resolves a diagram block to the Markdown image reference that
// replaces it. Returning ok=false keeps the original fence in place (used
// for diagrams that failed to render).
type ImageRef func(b DiagramBlock) (altText, path string, ok bool)

// ReplaceBlocks returns a copy of content with each diagram fence replaced
// by an image reference. Content must be the same \n-normalized string the
// blocks were extracted from; blocks must be in document order.
func ReplaceBlocks(content string, blocks []DiagramBlock, ref ImageRef) string {
	if len(blocks) == 0 {
		return content
	}

	var sb strings.Builder
	sb.Grow(len(content))

	prev := 0
	for _, b := range blocks {
		alt, path, ok := ref(b)
		if !ok {
			continue
		}
		sb.WriteString(content[prev:b.start])
		sb.WriteString("![")
		sb.WriteString(alt)
		sb.WriteString("](")
		sb.WriteString(path)
		sb.WriteString(")\n")
		prev = b.end
	}
	sb.WriteString(content[prev:])

	return sb.String()
}
