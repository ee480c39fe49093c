package cardgen

import (
	"fmt"
	"strings"
)

// Request describes one card generation: the input word plus the note-type
// context the content must fit.
type Request struct {
	Word         string
	ModelName    string
	FieldNames   []string
	Language     string
	Instructions string // optional per-model instructions
	Context      string // optional free-form context (difficulty, topic, ...)
}

const systemPrompt = "You are a helpful assistant that creates educational flashcards. Return only valid JSON."

// BuildPrompt assembles the generation prompt for one word.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate flashcard content for the word/phrase: %q\n", req.Word)
	fmt.Fprintf(&b, "Target language: %s\n", req.Language)
	fmt.Fprintf(&b, "Anki Model: %s\n", req.ModelName)
	fmt.Fprintf(&b, "Required fields: %s\n\n", strings.Join(req.FieldNames, ", "))

	fmt.Fprintf(&b, "CRITICAL: ALL content (meanings, definitions, examples, explanations) MUST be written in %s.\n", strings.ToUpper(req.Language))
	b.WriteString("Do NOT mix languages. If the word is in English but target language is Vietnamese, write meanings in Vietnamese.\n\n")

	if req.Instructions != "" {
		fmt.Fprintf(&b, "Model-specific instructions: %s\n\n", req.Instructions)
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "Additional context: %s\n\n", req.Context)
	}

	// Field-specific guidance for the two common note types.
	if contains(req.FieldNames, "Front") && contains(req.FieldNames, "Back") {
		b.WriteString("For Basic cards, Front should contain the question/prompt, Back should contain the answer.\n")
	} else if contains(req.FieldNames, "Text") {
		b.WriteString("For Cloze cards, use {{c1::text}} format to mark deletions. You can use multiple cloze deletions like {{c1::first}}, {{c2::second}}.\n")
	}

	b.WriteString("\nReturn ONLY a JSON object with the field names as keys and content as values. No additional text or markdown formatting.")

	return b.String()
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
