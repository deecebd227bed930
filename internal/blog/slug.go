package blog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Serbian and Russian Cyrillic, plus Latin letters that do not decompose.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'ђ': "dj", 'е': "e",
	'ё': "e", 'ж': "z", 'з': "z", 'и': "i", 'й': "j", 'ј': "j", 'к': "k",
	'л': "l", 'љ': "lj", 'м': "m", 'н': "n", 'њ': "nj", 'о': "o", 'п': "p",
	'р': "r", 'с': "s", 'т': "t", 'ћ': "c", 'у': "u", 'ф': "f", 'х': "h",
	'ц': "c", 'ч': "c", 'џ': "dz", 'ш': "s", 'щ': "sc", 'ъ': "", 'ы': "y",
	'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",
	'đ': "dj", 'ß': "ss", 'æ': "ae", 'ø': "o", 'ł': "l",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

const maxSlugLen = 120

// Slugify turns a title in any site language into a lowercase ASCII slug.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if s, ok := translit[r]; ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(r)
	}

	plain, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		plain = b.String()
	}

	var out strings.Builder
	dash := false
	for _, r := range plain {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
			dash = false
		case out.Len() > 0 && !dash:
			out.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(out.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}
