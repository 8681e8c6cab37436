package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var en = message.NewPrinter(language.English)

func Numberify(value int64) string {
	return en.Sprintf("%d", value)
}

// Contextify renders a context window as a compact token count, e.g. 200K.
func Contextify(tokens int) string {
	if tokens >= 1000 && tokens%1000 == 0 {
		return en.Sprintf("%dK", tokens/1000)
	}
	if tokens >= 1000 {
		return en.Sprintf("%.1fK", float64(tokens)/1000)
	}
	return en.Sprintf("%d", tokens)
}
