package service

import "strings"

// decimalDigits normalizes a base-10 integer literal: an optional sign and
// digits only, leading zeros dropped. cast parses with base 0, so "010"
// would otherwise read as octal and "0x10" as hex.
func decimalDigits(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	sign := ""
	if strings.HasPrefix(raw, "-") || strings.HasPrefix(raw, "+") {
		sign, raw = raw[:1], raw[1:]
	}
	if raw == "" {
		return "", false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	raw = strings.TrimLeft(raw, "0")
	if raw == "" {
		return "0", true
	}
	if sign == "+" {
		sign = ""
	}
	return sign + raw, true
}
