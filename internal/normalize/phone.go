package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/nyaruka/phonenumbers"
)

// extensionRegex captures a trailing extension such as "ext. 123", "x42" or
// "#9" so the base number can be parsed on its own.
var extensionRegex = regexp.MustCompile(`(?i)\s*(?:ext\.?|x|#)\s*(\d{1,6})\s*$`)

var nonDigitRegex = regexp.MustCompile(`\D`)

// Phone normalizes a phone number according to the configured style. On
// parse failure the input is returned unchanged; the failure is logged at
// warn level and never escalated.
func (n *Normalizer) Phone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, model.Missing) {
		return raw
	}

	if n.config.Style == StyleBasic {
		return basicPhone(raw)
	}

	return n.libphone(raw, trimmed)
}

func (n *Normalizer) libphone(raw, trimmed string) string {
	base, extension := splitExtension(trimmed)

	num, err := phonenumbers.Parse(base, n.config.Region)
	if err != nil {
		slog.Warn("Failed to parse phone number, keeping original",
			"phone", raw,
			"error", err)
		return raw
	}
	if !phonenumbers.IsValidNumber(num) {
		slog.Warn("Phone number is not valid for region, keeping original",
			"phone", raw,
			"region", n.config.Region)
		return raw
	}

	var formatted string
	switch phonenumbers.GetRegionCodeForNumber(num) {
	case "US", "CA":
		// National format is "(NNN) NNN-NNNN"; prefix the country code.
		formatted = "+1 " + phonenumbers.Format(num, phonenumbers.NATIONAL)
	default:
		formatted = phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}

	if extension != "" {
		formatted += " ext. " + extension
	}

	return formatted
}

// splitExtension strips a trailing extension from a phone number, returning
// the base number and the captured extension digits.
func splitExtension(phone string) (base, extension string) {
	match := extensionRegex.FindStringSubmatch(phone)
	if match == nil {
		return phone, ""
	}
	return strings.TrimSpace(phone[:len(phone)-len(match[0])]), match[1]
}

// basicPhone is the simple variant: digits only, 10 digits or nothing.
func basicPhone(raw string) string {
	digits := nonDigitRegex.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}
