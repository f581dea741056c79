package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// PromptBuilder turns queued texts into the instruction prompt and the data
// fragment of the single model request.
type PromptBuilder struct {
	Source language.Tag
	Target language.Tag
	EOL    string
}

// NewPromptBuilder creates a builder for the language pair using the
// default EOL marker.
func NewPromptBuilder(source, target language.Tag) PromptBuilder {
	return PromptBuilder{Source: source, Target: target, EOL: EOLMarker}
}

// Build returns the instruction text and the data block. The data block has
// one "<id>:<text>" line per item in queue order.
func (b PromptBuilder) Build(items []QueueItem) (string, string) {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.ID + ":" + item.TextToSend
	}
	return b.Instruction(), strings.Join(lines, "\n")
}

// Instruction renders the fixed instruction template. The worked example
// primes the model with the exact reply format the reconciler parses.
func (b PromptBuilder) Instruction() string {
	src, dst := LanguageName(b.Source), LanguageName(b.Target)
	eol := b.EOL

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert %s to %s translator. ", src, dst)
	fmt.Fprintf(&sb, "Translate the following text segments accurately from %s to %s. ", src, dst)
	sb.WriteString("Each segment is prefixed with a unique ID (e.g., pg1_txt0, pg1_txt1). ")
	sb.WriteString("IMPORTANT: A sequence of text items (e.g., pg1_txt0, pg1_txt1, pg1_txt2) may represent a single continuous sentence that has been split due to formatting. ")
	sb.WriteString("Interpret and translate such sequences as a coherent whole sentence to maintain context and flow, but return each ID as its own segment. ")
	fmt.Fprintf(&sb, "The text for each ID might end with an EOL marker: '%s'. ", eol)
	sb.WriteString("Your response MUST consist ONLY of the translated segments, each prefixed with its original ID, and each on a new line. Maintain the exact ID and format. ")
	sb.WriteString("PRESERVE ALL LEADING AND TRAILING WHITESPACE from the original segment in your translation. ")
	fmt.Fprintf(&sb, "If an EOL marker '%s' was present at the end of the input segment, IT MUST be present at the end of your translated segment, including any whitespace before it.\n", eol)

	sb.WriteString("For example, in a Finnish to English job, if you receive:\n")
	sb.WriteString("pg1_txt0: Tämä on pitkä \n")
	sb.WriteString("pg1_txt1:lause, joka on \n")
	fmt.Fprintf(&sb, "pg1_txt2:jaettu.%s\n", eol)
	fmt.Fprintf(&sb, "pg1_txt3:    Toinen lause.   %s\n", eol)
	sb.WriteString("pg2_txt0: Yksittäinen.\n")
	sb.WriteString("You MUST return:\n")
	sb.WriteString("pg1_txt0: This is a long \n")
	sb.WriteString("pg1_txt1:sentence that has been \n")
	fmt.Fprintf(&sb, "pg1_txt2:split.%s\n", eol)
	fmt.Fprintf(&sb, "pg1_txt3:    Another sentence.   %s\n", eol)
	sb.WriteString("pg2_txt0: Standalone.\n\n")

	sb.WriteString("Do not add any extra explanations, apologies, or introductory/concluding remarks. ")
	sb.WriteString("Only provide the ID followed by the translated text for each item.\n\n")
	sb.WriteString("Texts to translate:\n")
	return sb.String()
}
