package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// PREFIXES defines the valid prefixes for supported wallet operators
var PREFIXES = struct {
	TELKOMSEL []int
}{
	TELKOMSEL: []int{811, 812, 813, 821, 822, 823, 851, 852, 853},
}

// ValidateMSISDN validates a phone number format and checks if it belongs to
// a supported wallet operator. Returns the normalized number with country code.
func ValidateMSISDN(msisdn string) (bool, string, error) {
	// Clean the input by removing any non-digit characters
	stripped := strings.ReplaceAll(msisdn, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, "+", "")

	// Remove country code if present (e.g., 62 for Indonesia)
	if strings.HasPrefix(stripped, "62") {
		stripped = stripped[2:]
	} else if strings.HasPrefix(stripped, "0") {
		stripped = stripped[1:]
	}

	prefixesStr := make([]string, len(PREFIXES.TELKOMSEL))
	for i, prefix := range PREFIXES.TELKOMSEL {
		prefixesStr[i] = fmt.Sprintf("%d", prefix)
	}

	pattern := fmt.Sprintf("^(%s)\\d{6,8}$", strings.Join(prefixesStr, "|"))
	isValid := regexp.MustCompile(pattern).MatchString(stripped)

	if !isValid {
		return false, "", fmt.Errorf("invalid MSISDN format or unsupported operator")
	}

	// Format with country code
	formatted := "62" + stripped

	return true, formatted, nil
}
