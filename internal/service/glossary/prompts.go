package glossary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
)

func generatePrompt(seedWord string, title *string, termCount int) string {
	domainContext := "Focus on technical and development-related terms."
	if title != nil {
		domainContext = fmt.Sprintf("The glossary is titled %q, so focus on terms relevant to this domain.", *title)
	}

	labels, _ := json.MarshalIndent(domain.DefaultTranslations(), "    ", "  ")

	return fmt.Sprintf(`You are a technical glossary expert. Generate a comprehensive glossary based on the seed word: %[1]q.

%[2]s

Create a glossary with:
1. A brief description (2-3 sentences) explaining what this glossary covers
2. Exactly %[3]d technical terms related to %[1]q

## Language Rules
- Detect the natural language of the seed word and title
- Write the description, every term and every definition in that language
- Report the language name in English as "detectedLanguage" (for example "English", "Portuguese", "Spanish")
- Provide "translations": the UI labels below translated into the detected language, keeping the keys unchanged

## Term Selection Rules
- The seed word MUST be the first term with importance 10
- Include foundational "atoms" (smallest building blocks of the concept)
- Before including a specialized variant, ensure its parent category exists
- Prefer canonical/historical terms over informal names
- Balance: 3-4 foundational (9-10), 4-5 core (7-8), 3-4 applied (5-7)

## Definition Rules
- Sentence 1: WHAT it is (category + key characteristic)
- Sentence 2: WHY it matters or HOW it's used
- Never use the term in its own definition
- Be specific - avoid "various", "different", "many"
- Maximum 50 words per definition
- Write acronyms in upper case and expand them in the first sentence of the definition

## Importance Calibration
- 10: The seed word itself
- 9: Absolute prerequisites (cannot understand topic without)
- 8: Core domain concepts
- 7: Important supporting concepts
- 6-5: Specialized/advanced topics

## Consistency Rules
- All relatedTerms MUST reference terms that exist in this glossary
- Relationships should be bidirectional where logical

Example of a well-structured term:
{
  "term": "Gradient Descent",
  "definition": "An optimization algorithm that iteratively adjusts parameters by moving in the direction of steepest decrease of a loss function. It forms the foundation of how neural networks learn from training data.",
  "importance": 8,
  "relatedTerms": ["Loss Function", "Backpropagation", "Learning Rate"]
}

Return ONLY valid JSON in this exact format:
{
  "description": "Brief description of the glossary",
  "detectedLanguage": "English",
  "translations": %[4]s,
  "terms": [
    {
      "term": "Term Name",
      "definition": "Clear definition following the rules above",
      "importance": 8,
      "relatedTerms": ["Related Term 1", "Related Term 2"]
    }
  ]
}`, seedWord, domainContext, termCount, labels)
}

func expandPrompt(in ExpandInput) string {
	domainContext := fmt.Sprintf("This term is part of a technical glossary about %q.", in.SeedWord)
	if in.GlossaryTitle != nil {
		domainContext = fmt.Sprintf("This term is part of a %q glossary about %q.", *in.GlossaryTitle, in.SeedWord)
	}

	var languageSection, languageTask string
	if lang := languageOf(in.DetectedLanguage); lang != "" {
		languageSection = fmt.Sprintf("\n## Language Requirement\nGenerate all paragraphs and source descriptions in %s. "+
			"Source names (like \"Python Documentation\") may remain in their original language if they are proper nouns.\n", lang)
		languageTask = fmt.Sprintf(" Write all content in %s.", lang)
	}

	return fmt.Sprintf(`You are a technical documentation expert. Provide expanded information for the following term.
%s
TERM: %q
CURRENT DEFINITION: %q
DOMAIN CONTEXT: %s

## Your Task
Generate additional context and cite reliable sources for this term.%s

## Content Requirements
1. Write 1-3 paragraphs (each 40-80 words) that:
   - Expand on practical applications or use cases
   - Explain common patterns or best practices
   - Clarify nuances or edge cases
   - Do NOT repeat the definition

2. Cite 1-3 reliable sources from these categories ONLY:
   - Official documentation (language/framework docs)
   - MDN Web Docs (for web technologies)
   - W3C specifications
   - RFCs and official standards
   - Reputable publisher documentation (e.g., Oracle, Microsoft, Google)

## CRITICAL URL Rules
- NEVER include Wikipedia links
- Only include a URL if you are HIGHLY confident it exists and is stable
- If unsure about a URL, provide ONLY the source name without a URL
- Prefer documentation paths that are unlikely to change (e.g., "/docs/concepts/" over dated blog posts)
- When citing official docs, use the most stable/canonical URL format

## Response Format
Return ONLY valid JSON:
{
  "paragraphs": [
    "First paragraph of expanded context...",
    "Second paragraph with practical details..."
  ],
  "sources": [
    {
      "name": "Python Official Documentation - Functions",
      "url": "https://docs.python.org/3/tutorial/controlflow.html#defining-functions",
      "description": "Official tutorial on defining and using functions"
    },
    {
      "name": "Real Python Advanced Guide",
      "description": "Covers advanced function patterns and decorators"
    }
  ]
}

Note: The second source example shows a citation WITHOUT a URL - use this format when you cannot guarantee URL validity.`,
		languageSection, in.Term, in.Definition, domainContext, languageTask)
}

func extendPrompt(g *domain.Glossary, count int) string {
	focus := "Technical/development focused"
	if g.Title != nil {
		focus = fmt.Sprintf("Aligned with the %q context", *g.Title)
	}

	var language string
	if lang := languageOf(g.DetectedLanguage); lang != "" {
		language = fmt.Sprintf("\nWrite every term and definition in %s.\n", lang)
	}

	return fmt.Sprintf(`You are a technical glossary expert. I have an existing glossary about %[1]q with these terms already defined:

%[2]s

Generate %[3]d MORE technical terms related to this glossary that are NOT in the list above. These should be:
- Complementary to the existing terms
- Relevant to the domain of %[1]q
- %[4]s
- Different from all existing terms (no duplicates!)
%[5]s
For each new term, provide:
- term: The technical term or concept name (must be unique!)
- definition: A clear, concise definition (1-2 sentences)
- importance: A score from 1-10 indicating importance/fundamentality
- relatedTerms: An array of 2-4 related terms (can reference existing terms or new terms in this batch)

Return ONLY valid JSON in this exact format:
{
  "terms": [
    {
      "term": "New Term Name",
      "definition": "Clear definition",
      "importance": 7,
      "relatedTerms": ["Related Term 1", "Related Term 2"]
    }
  ]
}`, g.SeedWord, strings.Join(g.TermNames(), ", "), count, focus, language)
}

// languageOf returns the language to instruct the model with, or "" when
// the default language applies.
func languageOf(lang *string) string {
	if lang == nil || domain.IsDefaultLanguage(*lang) {
		return ""
	}
	return strings.TrimSpace(*lang)
}
