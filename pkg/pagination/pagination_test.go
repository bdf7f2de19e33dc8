package pagination

import "testing"

func TestNormalizeClampsInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         Params
		wantOffset int
		wantLimit  int
	}{
		{"defaults", Params{}, 0, DefaultPerPage},
		{"negative page", Params{Page: -3, PerPage: 10}, 0, 10},
		{"over max", Params{Page: 2, PerPage: 500}, MaxPerPage, MaxPerPage},
		{"second page", Params{Page: 3, PerPage: 10}, 20, 10},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.in.Offset(); got != tc.wantOffset {
				t.Fatalf("offset: got %d want %d", got, tc.wantOffset)
			}
			if got := tc.in.Limit(); got != tc.wantLimit {
				t.Fatalf("limit: got %d want %d", got, tc.wantLimit)
			}
		})
	}
}
