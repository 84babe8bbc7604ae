package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// DiagramTag is the fence info-string that marks a diagram block.
const DiagramTag = "mermaid"

// crlfOrCR matches Windows and old-Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
// Extraction and rewriting both assume \n-terminated lines, so callers
// must normalize once and use the normalized content for both.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// DiagramBlock is one fenced diagram extracted from a Markdown document.
type DiagramBlock struct {
	Index  int    // 1-based position in document order
	Source string // fence body with surrounding whitespace trimmed

	start int // byte offset of the opening fence line
	end   int // byte offset one past the closing fence line
}

// ExtractDiagrams returns all fenced code blocks tagged with DiagramTag,
// in document order. Content must be \n-normalized (see
// NormalizeLineEndings). A document with no tagged blocks yields nil.
func ExtractDiagrams(content string) []DiagramBlock {
	return extractTagged(content, DiagramTag)
}

// extractTagged walks the goldmark AST collecting fenced blocks whose
// info-string language matches tag (case-insensitive).
func extractTagged(content, tag string) []DiagramBlock {
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(gtext.NewReader(src))

	var blocks []DiagramBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		if !strings.EqualFold(string(fcb.Language(src)), tag) {
			return ast.WalkContinue, nil
		}

		start, end := fenceSpan(src, fcb)
		blocks = append(blocks, DiagramBlock{
			Index:  len(blocks) + 1,
			Source: strings.TrimSpace(fenceBody(src, fcb)),
			start:  start,
			end:    end,
		})
		return ast.WalkContinue, nil
	})

	return blocks
}

// fenceBody concatenates the content lines of a fenced block.
func fenceBody(src []byte, fcb *ast.FencedCodeBlock) string {
	var sb strings.Builder
	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// fenceSpan computes the byte span of the whole fence, opening marker line
// through closing marker line. Goldmark's AST only records the info segment
// and the content lines, so the marker lines are recovered from the raw
// source around them.
func fenceSpan(src []byte, fcb *ast.FencedCodeBlock) (start, end int) {
	info := fcb.Info.Segment
	start = lineStart(src, info.Start)

	// One past the last content byte; for empty blocks, past the info string.
	contentStop := info.Stop
	if lines := fcb.Lines(); lines.Len() > 0 {
		contentStop = lines.At(lines.Len() - 1).Stop
	}

	// The closing fence starts on the line after the content.
	closeStart := contentStop
	if closeStart > 0 && closeStart <= len(src) && src[closeStart-1] != '\n' {
		closeStart = lineEnd(src, closeStart)
	}

	if isClosingFence(src, closeStart) {
		return start, lineEnd(src, closeStart)
	}
	// Unterminated fence: the block runs to the end of its content.
	return start, closeStart
}

// lineStart returns the offset of the first byte of the line containing i.
func lineStart(src []byte, i int) int {
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

// lineEnd returns the offset one past the newline ending the line that
// starts at or contains i, or len(src) for a final unterminated line.
func lineEnd(src []byte, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	if i < len(src) {
		i++ // include the newline
	}
	return i
}

// isClosingFence reports whether the line starting at offset i is a code
// fence marker: any blockquote markers, up to three leading spaces, then
// three or more backticks or tildes, then nothing but whitespace. Blockquote
// markers are skipped so a fence inside a blockquote still claims its
// closing line.
func isClosingFence(src []byte, i int) bool {
	if i >= len(src) {
		return false
	}
	i = skipBlockquoteMarkers(src, i)
	j := i
	for j < len(src) && j < i+3 && src[j] == ' ' {
		j++
	}
	if j >= len(src) || (src[j] != '`' && src[j] != '~') {
		return false
	}
	marker := src[j]
	count := 0
	for j < len(src) && src[j] == marker {
		j++
		count++
	}
	if count < 3 {
		return false
	}
	for j < len(src) && src[j] != '\n' {
		if src[j] != ' ' && src[j] != '\t' {
			return false
		}
		j++
	}
	return true
}

// skipBlockquoteMarkers advances past any "> " prefixes (each allowing up to
// three leading spaces) on the line starting at offset i.
func skipBlockquoteMarkers(src []byte, i int) int {
	for {
		j := i
		for n := 0; j < len(src) && n < 3 && src[j] == ' '; n++ {
			j++
		}
		if j >= len(src) || src[j] != '>' {
			return i
		}
		j++
		if j < len(src) && src[j] == ' ' {
			j++
		}
		i = j
	}
}
