// Package export renders a project for use outside the engine.
package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/prose"
)

// Format identifies a supported export rendering.
type Format string

const (
	FormatMarkdown   Format = "markdown"
	FormatManuscript Format = "manuscript"
	FormatHTML       Format = "html"
)

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatManuscript, FormatHTML}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatManuscript:
		return ".txt"
	case FormatHTML:
		return ".html"
	default:
		return ".md"
	}
}

// Render produces the project in the requested format.
func Render(f Format, p *state.Project) (string, error) {
	switch f {
	case FormatMarkdown:
		return Markdown(p), nil
	case FormatManuscript:
		return Manuscript(p), nil
	case FormatHTML:
		return HTML(p), nil
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
}

// Markdown renders the project with YAML front matter.
func Markdown(p *state.Project) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", p.Title)
	fmt.Fprintf(&b, "created: %s\n", stamp(p.CreatedAt))
	fmt.Fprintf(&b, "modified: %s\n", stamp(p.ModifiedAt))
	fmt.Fprintf(&b, "bay: %s\n", p.Bay)
	fmt.Fprintf(&b, "word_count: %d\n", prose.WordCount(p.Draft))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	b.WriteString(p.Draft)
	return b.String()
}

// Manuscript renders the project in submission manuscript layout:
// a word count and title header followed by indented paragraphs.
func Manuscript(p *state.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d words\n\n\n\n", prose.WordCount(p.Draft))
	b.WriteString(p.Title)
	b.WriteString("\n\n\n\n")
	for _, para := range paragraphs(p.Draft) {
		fmt.Fprintf(&b, "    %s\n\n", para)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HTML renders the project as a minimal self-contained eBook page.
func HTML(p *state.Project) string {
	title := html.EscapeString(p.Title)
	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body {
            font-family: 'Georgia', serif;
            line-height: 1.6;
            max-width: 40em;
            margin: 2em auto;
            padding: 0 1em;
        }
        h1 {
            text-align: center;
            margin-bottom: 2em;
        }
        p {
            text-indent: 2em;
            margin: 0;
            margin-bottom: 1em;
        }
    </style>
</head>
<body>
    <h1>%s</h1>
`, title, title)
	for _, para := range paragraphs(p.Draft) {
		fmt.Fprintf(&b, "    <p>%s</p>\n", html.EscapeString(para))
	}
	b.WriteString("</body>\n</html>")
	return b.String()
}

func paragraphs(draft string) []string {
	var out []string
	for _, para := range strings.Split(draft, "\n\n") {
		if s := strings.TrimSpace(para); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
