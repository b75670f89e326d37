package accessCode

import (
	"strconv"
	"strings"

	"github.com/samborkent/uuidv7"
)

// CodeLength is the number of characters in an invite code.
const CodeLength = 9

// GenerateCode returns a short upper-case alphanumeric invite code taken from
// the random tail of a UUIDv7.
func GenerateCode() string {
	hex := strings.ReplaceAll(uuidv7.New().String(), "-", "")
	tail, err := strconv.ParseUint(hex[len(hex)-16:], 16, 64)
	if err != nil {
		// Unreachable for a well-formed UUID.
		return strings.ToUpper(hex[len(hex)-CodeLength:])
	}

	code := strings.ToUpper(strconv.FormatUint(tail, 36))
	if len(code) < CodeLength {
		code = strings.Repeat("0", CodeLength-len(code)) + code
	}
	return code[len(code)-CodeLength:]
}

// Normalize trims and upper-cases a code typed by a user.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code has the shape of an invite code.
func Valid(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
