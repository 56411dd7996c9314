package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the Markdown report to a standalone HTML page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

func (h HTMLFormatter) Format(eval *domain.Evaluation) ([]byte, error) {
	src, err := MarkdownFormatter{}.Format(eval)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdown.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: fmt.Sprintf("%s jackpot in %s", FormatCurrency(eval.Input.AdvertisedJackpot), eval.StateName),
		// goldmark drops raw HTML unless configured as unsafe
		Body: template.HTML(body.String()),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
