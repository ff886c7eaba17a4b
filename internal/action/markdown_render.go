package action

import (
	"html"
	"regexp"
	"strings"
)

var (
	reHeading  = regexp.MustCompile(`(?m)^(#{1,6})\s+(.*)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic   = regexp.MustCompile(`\*(.+?)\*`)
	reCodeSpan = regexp.MustCompile("`([^`]+)`")
)

// minimalMarkdown covers headings, fenced code blocks, bold/italic,
// inline code, and paragraphs - the subset a rendered bookmark payload
// realistically uses. Anything else passes through as a plain paragraph.
func minimalMarkdown(src string) string {
	var out strings.Builder
	lines := strings.Split(src, "\n")
	inFence := false
	var para []string

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		out.WriteString("<p>")
		out.WriteString(inlineMarkdown(strings.Join(para, " ")))
		out.WriteString("</p>\n")
		para = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			flushPara()
			if inFence {
				out.WriteString("</pre>\n")
			} else {
				out.WriteString("<pre>")
			}
			inFence = !inFence
			continue
		}
		if inFence {
			out.WriteString(html.EscapeString(line))
			out.WriteString("\n")
			continue
		}
		if m := reHeading.FindStringSubmatch(line); m != nil {
			flushPara()
			level := len(m[1])
			out.WriteString("<h")
			out.WriteString(string(rune('0' + level)))
			out.WriteString(">")
			out.WriteString(inlineMarkdown(m[2]))
			out.WriteString("</h")
			out.WriteString(string(rune('0' + level)))
			out.WriteString(">\n")
			continue
		}
		if trimmed == "" {
			flushPara()
			continue
		}
		para = append(para, trimmed)
	}
	flushPara()
	return out.String()
}

func inlineMarkdown(s string) string {
	escaped := html.EscapeString(s)
	escaped = reCodeSpan.ReplaceAllString(escaped, "<code>$1</code>")
	escaped = reBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = reItalic.ReplaceAllString(escaped, "<em>$1</em>")
	return escaped
}
