package formatter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Population renders n with the digit grouping of the given locale,
// e.g. 1234567 -> "1,234,567" for en-US and "1.234.567" for de-DE.
func Population(n int64, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// ParseLocale parses a BCP 47 tag such as "en-US".
func ParseLocale(locale string) (language.Tag, error) {
	return language.Parse(locale)
}
