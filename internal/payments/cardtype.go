package payments

import (
	"strings"

	"github.com/verdantloop/verdantloop-backend/pkg/enums"
)

// ClassifyCard maps a PAN prefix to its network. Checks run in a fixed order
// so overlapping ranges resolve the same way every time: Visa wins over any
// later 4-prefix rule, Mastercard's 51-55 wins over Meeza's 50.
func ClassifyCard(number string) enums.CardNetwork {
	digits := normalizeCardNumber(number)
	if digits == "" {
		return enums.CardNetworkUnknown
	}

	switch {
	case strings.HasPrefix(digits, "4"):
		return enums.CardNetworkVisa
	case hasPrefixRange(digits, "51", "55"):
		return enums.CardNetworkMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return enums.CardNetworkAmex
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"):
		return enums.CardNetworkDiscover
	case strings.HasPrefix(digits, "2131"), strings.HasPrefix(digits, "1800"), strings.HasPrefix(digits, "35"):
		return enums.CardNetworkJCB
	case hasPrefixRange(digits, "300", "305"), strings.HasPrefix(digits, "36"), strings.HasPrefix(digits, "38"):
		return enums.CardNetworkDiners
	case strings.HasPrefix(digits, "5019"):
		return enums.CardNetworkMeeza
	default:
		return enums.CardNetworkUnknown
	}
}

// normalizeCardNumber strips spaces and dashes, returning empty when any
// other non-digit shows up.
func normalizeCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			// separators are fine
		default:
			return ""
		}
	}
	return b.String()
}

func hasPrefixRange(digits, low, high string) bool {
	if len(digits) < len(low) {
		return false
	}
	prefix := digits[:len(low)]
	return prefix >= low && prefix <= high
}
