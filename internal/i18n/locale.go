package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported lists the site languages in preference order.
var Supported = []string{"sr", "en", "ru"}

var matcher = language.NewMatcher(tags(Supported))

func tags(codes []string) []language.Tag {
	out := make([]language.Tag, len(codes))
	for i, c := range codes {
		out[i] = language.MustParse(c)
	}
	return out
}

// IsSupported reports whether code is one of the site languages.
func IsSupported(code string) bool {
	for _, s := range Supported {
		if s == code {
			return true
		}
	}
	return false
}

// Negotiate maps a language tag or Accept-Language value onto a supported
// locale, falling back to def.
func Negotiate(raw, def string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}

	requested, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(requested) == 0 {
		return def
	}

	_, idx, conf := matcher.Match(requested...)
	if conf == language.No {
		return def
	}
	return Supported[idx]
}
