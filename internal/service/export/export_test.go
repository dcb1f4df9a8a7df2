package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"baliance.com/gooxml/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lularocha/glossary-builder/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleGlossary() *domain.Glossary {
	return &domain.Glossary{
		ID:          "g-1",
		Title:       strPtr("Cloud Native: Basics"),
		Description: "Vocabulary for running containers.",
		SeedWord:    "Kubernetes",
		Terms: []domain.Term{
			{
				Term:         "Kubernetes",
				Definition:   "An orchestrator.",
				Importance:   10,
				RelatedTerms: []string{"Pod", "Node"},
				ExpandedContent: &domain.ExpandedContent{
					Paragraphs: []string{"Kubernetes schedules containers.", "It was open-sourced in 2014."},
					Sources: []domain.Source{
						{Name: "Kubernetes Docs", URL: strPtr("https://kubernetes.io/docs/"), Description: strPtr("Official documentation")},
						{Name: "Borg paper"},
					},
				},
			},
			{Term: "Pod", Definition: "Smallest deployable unit.", Importance: 14, RelatedTerms: []string{}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"docx", FormatDocx, false},
		{" DOCX ", FormatDocx, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Markdown(sampleGlossary())

	assert.True(t, strings.HasPrefix(md, "# Cloud Native: Basics\n\nVocabulary for running containers.\n\n"))
	assert.Contains(t, md, "**Seed Word:** Kubernetes\n\n")
	assert.Contains(t, md, "**2 terms**\n\n")
	assert.Contains(t, md, "## 1. Kubernetes\n\n**Definition:** An orchestrator.\n\n**Importance:** 10/10\n\n")
	assert.Contains(t, md, "**Related Terms:** Pod, Node\n\n")
	assert.Contains(t, md, "### Learn more\n\nKubernetes schedules containers.\n\nIt was open-sourced in 2014.\n\n")
	assert.Contains(t, md, "- [Kubernetes Docs](https://kubernetes.io/docs/) — Official documentation\n- Borg paper\n")
	assert.Contains(t, md, "## 2. Pod\n\n**Definition:** Smallest deployable unit.\n\n**Importance:** 10/10\n\n---\n\n")
	assert.Equal(t, 1, strings.Count(md, "Related Terms"), "terms without related terms get no line")
}

func TestMarkdown_LocalizedLabels(t *testing.T) {
	t.Parallel()

	g := sampleGlossary()
	g.Title = nil
	g.DetectedLanguage = strPtr("Spanish")
	g.Translations = map[string]string{
		domain.LabelGlossary:     "Glosario",
		domain.LabelTerms:        "términos",
		domain.LabelRelatedTerms: "Términos relacionados",
		domain.LabelLearnMore:    "Más información",
		domain.LabelSources:      "Fuentes",
	}

	md := Markdown(g)

	assert.True(t, strings.HasPrefix(md, "# Glosario\n\n"))
	assert.Contains(t, md, "**2 términos**")
	assert.Contains(t, md, "**Términos relacionados:** Pod, Node")
	assert.Contains(t, md, "### Más información")
	assert.Contains(t, md, "**Fuentes:**")
}

func TestService_Write_Docx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewService().Write(&buf, sampleGlossary(), FormatDocx))

	doc, err := document.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var text []string
	for _, p := range doc.Paragraphs() {
		var line strings.Builder
		for _, r := range p.Runs() {
			line.WriteString(r.Text())
		}
		text = append(text, line.String())
	}
	joined := strings.Join(text, "\n")

	assert.Contains(t, text, "Cloud Native: Basics")
	assert.Contains(t, joined, "Seed Word: Kubernetes")
	assert.Contains(t, joined, "1. Kubernetes")
	assert.Contains(t, joined, "Related Terms: Pod, Node")
	assert.Contains(t, joined, "It was open-sourced in 2014.")
	assert.Contains(t, joined, "2. Pod")
}

func TestService_Write_InvalidGlossary(t *testing.T) {
	t.Parallel()

	g := sampleGlossary()
	g.Terms = nil

	err := NewService().Write(&bytes.Buffer{}, g, FormatMarkdown)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Filename(t *testing.T) {
	t.Parallel()

	svc := NewService()
	svc.now = func() time.Time { return time.Date(2026, 7, 9, 23, 0, 0, 0, time.UTC) }

	assert.Equal(t, "cloud-native-basics-2026-07-09.md", svc.Filename(sampleGlossary(), FormatMarkdown))

	g := sampleGlossary()
	g.Title = strPtr("  ¿Qué es?  ")
	assert.Equal(t, "qué-es-2026-07-09.docx", svc.Filename(g, FormatDocx))

	g.Title = strPtr("!!!")
	assert.Equal(t, "glossary-2026-07-09.md", svc.Filename(g, FormatMarkdown))

	g.Title = nil
	assert.Equal(t, "glossary-2026-07-09.md", svc.Filename(g, FormatMarkdown))
}
