package curriculum

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims s and converts it to Unicode NFC so that names typed on
// different keyboards compare equal to the names in the document.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
