package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	languageCodesOnce sync.Once
	languageCodes     map[string]string // lowercase English name -> uppercase ISO 639-1 code
)

func loadLanguageCodes() {
	languageCodes = make(map[string]string)
	namer := display.English.Languages()
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			code := string([]rune{a, b})
			base, err := language.ParseBase(code)
			if err != nil || base.String() != code {
				continue
			}
			name := namer.Name(base)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, taken := languageCodes[key]; !taken {
				languageCodes[key] = strings.ToUpper(code)
			}
		}
	}
}

// LanguageCode maps an English language name ("English", "Japanese") or a
// language tag ("ja", "pt-BR") to an uppercase 2-letter code.
// Returns "" when the language is unknown.
func LanguageCode(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	languageCodesOnce.Do(loadLanguageCodes)
	if code, ok := languageCodes[strings.ToLower(name)]; ok {
		return code
	}

	tag, err := language.Parse(name)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No || len(base.String()) != 2 {
		return ""
	}
	return strings.ToUpper(base.String())
}
