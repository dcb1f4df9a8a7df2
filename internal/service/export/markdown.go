package export

import (
	"fmt"
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// Markdown renders g as a Markdown document. Section labels come from the
// glossary's translation table.
func Markdown(g *domain.Glossary) string {
	loc := g.Locale()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", g.DisplayTitle())
	if g.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", g.Description)
	}
	fmt.Fprintf(&b, "**Seed Word:** %s\n\n", g.SeedWord)
	fmt.Fprintf(&b, "**%d %s**\n\n", len(g.Terms), loc.Label(domain.LabelTerms))
	b.WriteString("---\n\n")

	for i, t := range g.Terms {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, t.Term)
		fmt.Fprintf(&b, "**Definition:** %s\n\n", t.Definition)
		fmt.Fprintf(&b, "**Importance:** %d/%d\n\n", t.ClampedImportance(), domain.MaxImportance)

		if len(t.RelatedTerms) > 0 {
			fmt.Fprintf(&b, "**%s:** %s\n\n", loc.Label(domain.LabelRelatedTerms), strings.Join(t.RelatedTerms, ", "))
		}

		if t.IsExpanded() {
			fmt.Fprintf(&b, "### %s\n\n", loc.Label(domain.LabelLearnMore))
			for _, p := range t.ExpandedContent.Paragraphs {
				fmt.Fprintf(&b, "%s\n\n", p)
			}
			if len(t.ExpandedContent.Sources) > 0 {
				fmt.Fprintf(&b, "**%s:**\n\n", loc.Label(domain.LabelSources))
				for _, src := range t.ExpandedContent.Sources {
					fmt.Fprintf(&b, "- %s\n", sourceLine(src))
				}
				b.WriteString("\n")
			}
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

func sourceLine(src domain.Source) string {
	line := src.Name
	if src.URL != nil && *src.URL != "" {
		line = fmt.Sprintf("[%s](%s)", src.Name, *src.URL)
	}
	if src.Description != nil && *src.Description != "" {
		line += " — " + *src.Description
	}
	return line
}
