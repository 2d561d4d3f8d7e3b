// Package site exports cached analyses as a static HTML site that can be
// hosted anywhere.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/render"
)

// Generator converts cached analyses into a static HTML site.
type Generator struct {
	OutputDir   string
	ProjectName string

	md goldmark.Markdown
}

// NewGenerator creates a Generator writing to outputDir.
func NewGenerator(outputDir, projectName string) *Generator {
	return &Generator{
		OutputDir:   outputDir,
		ProjectName: projectName,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// pageData holds the data passed to the HTML template for one analysis page.
type pageData struct {
	Title           string
	ProjectName     string
	VideoURL        string
	ChannelName     string
	PublishedAt     string
	Duration        string
	TimestampsValid string
	VanEckExcluded  string
	Content         template.HTML
}

// indexEntry is one row of the export's index page.
type indexEntry struct {
	Title       string
	Page        string
	ChannelName string
	PublishedAt string
	Failed      bool
}

// indexData holds the data for the index page.
type indexData struct {
	ProjectName string
	Entries     []indexEntry
}

// Generate writes one page per analysis plus an index and the stylesheet.
// Returns the number of analysis pages written.
func (g *Generator) Generate(analyses []analysis.Analysis) (int, error) {
	if len(analyses) == 0 {
		return 0, fmt.Errorf("no analyses to export")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	pageTmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}
	indexTmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing index template: %w", err)
	}

	var entries []indexEntry
	written := 0
	for _, a := range analyses {
		page := a.VideoID + ".html"
		entries = append(entries, indexEntry{
			Title:       a.Title,
			Page:        page,
			ChannelName: a.ChannelName,
			PublishedAt: a.PublishedAt,
			Failed:      !a.Success,
		})
		if !a.Success {
			continue
		}

		if err := g.writePage(pageTmpl, a, page); err != nil {
			return written, err
		}
		written++
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexData{ProjectName: g.ProjectName, Entries: entries}); err != nil {
		return written, fmt.Errorf("rendering index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "index.html"), buf.Bytes(), 0o644); err != nil {
		return written, err
	}

	if err := WriteSearchIndex(analyses, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return written, fmt.Errorf("writing search index: %w", err)
	}

	return written, nil
}

func (g *Generator) writePage(tmpl *template.Template, a analysis.Analysis, page string) error {
	var body bytes.Buffer
	if err := g.md.Convert([]byte(a.Analysis), &body); err != nil {
		return fmt.Errorf("converting analysis %s: %w", a.VideoID, err)
	}

	data := pageData{
		Title:           a.Title,
		ProjectName:     g.ProjectName,
		VideoURL:        a.VideoURL,
		ChannelName:     a.ChannelName,
		PublishedAt:     a.PublishedAt,
		Duration:        render.Duration(a.VideoDuration),
		TimestampsValid: render.YesNo(a.TimestampsValid),
		VanEckExcluded:  render.YesNo(a.VanEckExcluded),
		Content:         template.HTML(body.String()),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("rendering page %s: %w", page, err)
	}
	return os.WriteFile(filepath.Join(g.OutputDir, page), out.Bytes(), 0o644)
}
