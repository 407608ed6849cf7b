package htmldoc

import (
	_ "embed"
	"fmt"
	"html"
	"strings"
)

//go:embed ldoc.css
var stylesheet string

// Stylesheet returns the default stylesheet for generated pages.
func Stylesheet() string { return stylesheet }

// Page wraps rendered fragments in a complete page with navigation chrome.
func Page(title string, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n" + stylesheet + "</style>\n")
	b.WriteString("</head>\n<body>\n")
	navbar(&b, title)
	b.WriteString(body)
	b.WriteString("<footer>Generated by ldoc</footer>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func navbar(b *strings.Builder, title string) {
	b.WriteString("<nav class=\"navbar\">")
	fmt.Fprintf(b, "<span class=\"title\">%s</span>", html.EscapeString(title))
	b.WriteString("<a href=\"index.html\">Index</a>")
	b.WriteString("</nav>\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
