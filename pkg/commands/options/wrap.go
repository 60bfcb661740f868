package options

import "github.com/muesli/reflow/wordwrap"

// Wrap80 folds help text to 80 columns.
func Wrap80(text string) string {
	return wordwrap.String(text, 80)
}
