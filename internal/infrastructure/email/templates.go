package email

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var initialReportTemplate = template.Must(template.New("initial_report").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<p>Dear {{.VendorName}},</p>
	{{.BodyHTML}}
	<p style="color: #666; font-size: 12px;">
		Reference: {{.IssueRef}}. Please keep the subject line intact when replying
		so we can route your answer to the right case.
	</p>
	<p>{{.FromName}}</p>
</body>
</html>`))

var replyTemplate = template.Must(template.New("reply").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	{{.BodyHTML}}
	<p style="color: #666; font-size: 12px;">Reference: {{.IssueRef}}</p>
	<p>{{.FromName}}</p>
</body>
</html>`))

type templateData struct {
	VendorName string
	IssueRef   string
	FromName   string
	BodyHTML   template.HTML
}

func renderInitialReport(data templateData) (string, error) {
	var sb strings.Builder
	if err := initialReportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render initial report: %w", err)
	}
	return sb.String(), nil
}

func renderReply(data templateData) (string, error) {
	var sb strings.Builder
	if err := replyTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render reply: %w", err)
	}
	return sb.String(), nil
}

// bodyToHTML converts drafted plain text into paragraph markup. Blank lines
// separate paragraphs, single newlines become line breaks.
func bodyToHTML(body string) template.HTML {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	paragraphs := strings.Split(normalized, "\n\n")

	var sb strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		escaped := template.HTMLEscapeString(p)
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(escaped, "\n", "<br>"))
		sb.WriteString("</p>\n")
	}
	return template.HTML(sb.String())
}

var strictPolicy = bluemonday.StrictPolicy()

// htmlToPlainText strips all markup and returns readable plain text for the
// text/plain alternative part.
func htmlToPlainText(htmlBody string) string {
	withBreaks := strings.NewReplacer(
		"</p>", "\n\n",
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
	).Replace(htmlBody)

	stripped := strictPolicy.Sanitize(withBreaks)
	text := html.UnescapeString(stripped)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
