package export

import (
	"fmt"
	"io"
	"strings"

	"baliance.com/gooxml/document"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// writeDocx renders the same structure as Markdown into a Word document.
func writeDocx(w io.Writer, g *domain.Glossary) error {
	loc := g.Locale()
	doc := document.New()

	heading(doc, "Title", g.DisplayTitle())
	if g.Description != "" {
		doc.AddParagraph().AddRun().AddText(g.Description)
	}
	labelled(doc, "Seed Word", g.SeedWord)
	doc.AddParagraph().AddRun().AddText(fmt.Sprintf("%d %s", len(g.Terms), loc.Label(domain.LabelTerms)))

	for i, t := range g.Terms {
		heading(doc, "Heading1", fmt.Sprintf("%d. %s", i+1, t.Term))
		labelled(doc, "Definition", t.Definition)
		labelled(doc, "Importance", fmt.Sprintf("%d/%d", t.ClampedImportance(), domain.MaxImportance))

		if len(t.RelatedTerms) > 0 {
			labelled(doc, loc.Label(domain.LabelRelatedTerms), strings.Join(t.RelatedTerms, ", "))
		}

		if !t.IsExpanded() {
			continue
		}
		heading(doc, "Heading2", loc.Label(domain.LabelLearnMore))
		for _, p := range t.ExpandedContent.Paragraphs {
			doc.AddParagraph().AddRun().AddText(p)
		}
		if len(t.ExpandedContent.Sources) == 0 {
			continue
		}
		heading(doc, "Heading3", loc.Label(domain.LabelSources))
		for _, src := range t.ExpandedContent.Sources {
			sourceParagraph(doc, src)
		}
	}

	if err := doc.Save(w); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func heading(doc *document.Document, style, text string) {
	p := doc.AddParagraph()
	p.SetStyle(style)
	p.AddRun().AddText(text)
}

func labelled(doc *document.Document, label, value string) {
	p := doc.AddParagraph()
	r := p.AddRun()
	r.Properties().SetBold(true)
	r.AddText(label + ": ")
	p.AddRun().AddText(value)
}

func sourceParagraph(doc *document.Document, src domain.Source) {
	p := doc.AddParagraph()
	p.AddRun().AddText("• ")

	if src.URL != nil && *src.URL != "" {
		link := p.AddHyperLink()
		link.SetTarget(*src.URL)
		r := link.AddRun()
		r.Properties().SetStyle("Hyperlink")
		r.AddText(src.Name)
	} else {
		p.AddRun().AddText(src.Name)
	}

	if src.Description != nil && *src.Description != "" {
		p.AddRun().AddText(" — " + *src.Description)
	}
}
