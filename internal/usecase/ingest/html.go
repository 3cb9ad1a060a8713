package ingest

import (
	"html"
	"regexp"
	"strings"
)

var (
	reTitle    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	reScript   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyle    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reHead     = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	reComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	reBlock    = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	reBreak    = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	reTag      = regexp.MustCompile(`<[^>]+>`)
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// htmlTitle extracts the <title> text, if any.
func htmlTitle(content string) string {
	m := reTitle.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m[1]))
}

// stripHTML converts an HTML document to readable plain text: script, style
// and head bodies are dropped, block boundaries become newlines, the rest of
// the tags are removed and entities decoded.
func stripHTML(content string) string {
	content = reScript.ReplaceAllString(content, "")
	content = reStyle.ReplaceAllString(content, "")
	content = reHead.ReplaceAllString(content, "")
	content = reComment.ReplaceAllString(content, "")
	content = reBlock.ReplaceAllString(content, "\n")
	content = reBreak.ReplaceAllString(content, "\n")
	content = reTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = reSpaces.ReplaceAllString(content, " ")
	content = reNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
