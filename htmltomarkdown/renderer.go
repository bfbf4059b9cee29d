package htmltomarkdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/fwojciec/domsift"
)

// Ensure Renderer implements domsift.Renderer at compile time.
var _ domsift.Renderer = (*Renderer)(nil)

// Renderer formats a report as a Markdown summary. It lays the report out as
// HTML and lets the converter produce the Markdown.
type Renderer struct {
	conv  *Converter
	title string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTitle sets the summary heading.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		r.title = title
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{conv: NewConverter(), title: "DOM reduction report"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the Markdown summary of report.
func (r *Renderer) Render(report *domsift.Report) (string, error) {
	if report == nil {
		return "", domsift.Errorf(domsift.EINVALID, "report required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(r.title))

	b.WriteString("<h2>Summary</h2><ul>")
	item(&b, "Original size", fmt.Sprintf("%d characters", report.OriginalSize))
	item(&b, "Preserved size", fmt.Sprintf("%d characters", report.PreservedSize))
	item(&b, "Reduction", fmt.Sprintf("%.2f%%", report.ReductionPercent))
	item(&b, "Elements found", fmt.Sprint(report.Stats.TotalElementsFound))
	item(&b, "With id", fmt.Sprint(report.Stats.ElementsWithID))
	item(&b, "With data attributes", fmt.Sprint(report.Stats.ElementsWithDataAttrs))
	item(&b, "With role", fmt.Sprint(report.Stats.ElementsWithRole))
	if report.Tokens != nil {
		item(&b, "Tokens", fmt.Sprintf("%d → %d", report.Tokens.Original, report.Tokens.Preserved))
	}
	b.WriteString("</ul>")

	if len(report.Stats.TopTags) > 0 {
		b.WriteString("<h2>Top tags</h2><ol>")
		for _, tc := range report.Stats.TopTags {
			fmt.Fprintf(&b, "<li><code>%s</code>: %d</li>", html.EscapeString(tc.Tag), tc.Count)
		}
		b.WriteString("</ol>")
	}

	if len(report.PreservedElements) > 0 {
		b.WriteString("<h2>Elements</h2><table><thead><tr><th>Tag</th><th>Selectors</th><th>Text</th></tr></thead><tbody>")
		for _, el := range report.PreservedElements {
			selectors := make([]string, 0, len(el.Selectors))
			for _, s := range el.Selectors {
				selectors = append(selectors, "<code>"+html.EscapeString(s.Value)+"</code>")
			}
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(el.Tag),
				strings.Join(selectors, " "),
				html.EscapeString(el.TextPreview),
			)
		}
		b.WriteString("</tbody></table>")
	}

	return r.conv.Convert(b.String())
}

func item(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<li><strong>%s:</strong> %s</li>", html.EscapeString(label), html.EscapeString(value))
}
