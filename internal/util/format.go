package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vnd = message.NewPrinter(language.Vietnamese)

// Currency renders an amount of dong the way the storefront shows prices,
// e.g. 450000 -> "450.000 ₫".
func Currency(amount int64) string {
	return vnd.Sprintf("%d ₫", amount)
}
