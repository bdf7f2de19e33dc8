package payments

import (
	"testing"

	"github.com/verdantloop/verdantloop-backend/pkg/enums"
)

func TestClassifyCard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		number string
		want   enums.CardNetwork
	}{
		{"visa", "4111111111111111", enums.CardNetworkVisa},
		{"visa with spaces", "4111 1111 1111 1111", enums.CardNetworkVisa},
		{"mastercard low", "5105105105105100", enums.CardNetworkMastercard},
		{"mastercard high", "5555555555554444", enums.CardNetworkMastercard},
		{"amex 34", "340000000000009", enums.CardNetworkAmex},
		{"amex 37", "378282246310005", enums.CardNetworkAmex},
		{"discover 6011", "6011111111111117", enums.CardNetworkDiscover},
		{"discover 65", "6500000000000002", enums.CardNetworkDiscover},
		{"jcb 35", "3530111333300000", enums.CardNetworkJCB},
		{"jcb 2131", "2131000000000008", enums.CardNetworkJCB},
		{"jcb 1800", "1800000000000006", enums.CardNetworkJCB},
		{"diners 300", "30000000000004", enums.CardNetworkDiners},
		{"diners 305", "30500000000003", enums.CardNetworkDiners},
		{"diners 36", "36000000000008", enums.CardNetworkDiners},
		{"diners 38", "38000000000006", enums.CardNetworkDiners},
		{"meeza", "5019000000000000", enums.CardNetworkMeeza},
		{"unknown prefix", "9999999999999999", enums.CardNetworkUnknown},
		{"letters", "4111-abcd-1111", enums.CardNetworkUnknown},
		{"empty", "", enums.CardNetworkUnknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyCard(tc.number); got != tc.want {
				t.Fatalf("ClassifyCard(%q) = %s, want %s", tc.number, got, tc.want)
			}
		})
	}
}

func TestClassifyCardOrderResolvesOverlaps(t *testing.T) {
	t.Parallel()

	// 4-prefix always reads as Visa even when longer prefixes could match
	// later rules.
	if got := ClassifyCard("4000000000000000"); got != enums.CardNetworkVisa {
		t.Fatalf("expected visa, got %s", got)
	}
	// 35 belongs to JCB; Diners 36/38 must not swallow it.
	if got := ClassifyCard("3566002020360505"); got != enums.CardNetworkJCB {
		t.Fatalf("expected jcb, got %s", got)
	}
	// 50 is Meeza territory, not Mastercard.
	if got := ClassifyCard("5019123412341234"); got != enums.CardNetworkMeeza {
		t.Fatalf("expected meeza, got %s", got)
	}
}
