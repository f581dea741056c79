package translation

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of a language tag, such as
// "Finnish" for fi.
func LanguageName(tag language.Tag) string {
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// ParseLanguage parses a BCP 47 tag such as "fi" or "en-GB".
func ParseLanguage(s string) (language.Tag, error) {
	return language.Parse(strings.TrimSpace(s))
}

// DetectLanguage guesses the dominant language of texts. It reports false
// when no language could be identified.
func DetectLanguage(texts []string) (language.Tag, bool) {
	sample := strings.TrimSpace(strings.Join(texts, " "))
	if sample == "" {
		return language.Und, false
	}

	info := whatlanggo.Detect(sample)
	code := info.Lang.Iso6391()
	if code == "" {
		return language.Und, false
	}

	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
