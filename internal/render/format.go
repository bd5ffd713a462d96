package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indianEnglish = language.MustParse("en-IN")

// Digits groups an amount the way en-IN does (12,34,567).
func Digits(amount int64) string {
	return message.NewPrinter(indianEnglish).Sprintf("%d", amount)
}

// INR formats an amount in rupees for HTML output.
func INR(amount int64) string {
	return "₹" + Digits(amount)
}
