// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
	blockCode
	blockQuote
	blockRule
)

// block is one laid-out unit of a page: a heading, a paragraph, a list
// item, a code block, a quote, or a horizontal rule.
type block struct {
	kind  blockKind
	level int // heading level, or list nesting depth
	text  string
}

var markdown = goldmark.New()

// parseBlocks parses src as CommonMark and flattens it into blocks in
// document order. Inline styling is dropped; only the text is kept.
func parseBlocks(src string) []block {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, block{kind: blockHeading, level: node.Level, text: inlineText(node, source)})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			blocks = append(blocks, textBlock(node, source))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			blocks = append(blocks, block{kind: blockCode, text: rawLines(node, source)})
			return ast.WalkSkipChildren, nil
		case *ast.ThematicBreak:
			blocks = append(blocks, block{kind: blockRule})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// textBlock classifies a paragraph by its container: the first paragraph of
// a list item carries the item marker, a paragraph in a blockquote is a quote.
func textBlock(n ast.Node, source []byte) block {
	body := inlineText(n, source)
	depth := listDepth(n)
	if item, ok := n.Parent().(*ast.ListItem); ok {
		if n.PreviousSibling() == nil {
			body = listMarker(item) + body
		}
		return block{kind: blockListItem, level: depth, text: body}
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.Blockquote); ok {
			return block{kind: blockQuote, level: depth, text: body}
		}
	}
	return block{kind: blockParagraph, level: depth, text: body}
}

func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "- "
	}
	idx := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		idx++
	}
	return strconv.Itoa(idx) + ". "
}

// inlineText concatenates the text of n's inline children.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	writeInline(&b, n, source)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			switch {
			case node.HardLineBreak():
				b.WriteByte('\n')
			case node.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(source))
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.Write(seg.Value(source))
			}
		default:
			writeInline(b, c, source)
		}
	}
}

// rawLines returns the verbatim lines of a code or HTML block.
func rawLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
