// Package pipeline implements the Markdown stages of the export process:
// locating fenced diagram blocks and rewriting them as image references.
//
// Extraction parses the document with goldmark rather than scanning for
// fence markers by hand, so indented fences, tilde fences, and unterminated
// fences behave exactly as CommonMark defines them. Each extracted block
// carries the byte span of the whole fence (opening marker through closing
// marker), which is what rewriting splices out.
package pipeline
