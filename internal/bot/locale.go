package bot

import (
	"golang.org/x/text/language"

	"tezgah/internal/domain"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Turkish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// detectLanguage maps a Telegram user's language_code onto the supported
// output languages. Anything that does not match Turkish falls back to
// English.
func detectLanguage(code string) domain.Language {
	if code == "" {
		return domain.LanguageEnglish
	}
	tag, err := language.Parse(code)
	if err != nil {
		return domain.LanguageEnglish
	}
	_, index, _ := languageMatcher.Match(tag)
	if supportedLanguages[index] == language.Turkish {
		return domain.LanguageTurkish
	}
	return domain.LanguageEnglish
}
