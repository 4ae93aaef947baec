package types

import "testing"

func TestComposePhone(t *testing.T) {
	tests := []struct {
		name        string
		countryCode string
		local       string
		want        string
		wantErr     bool
	}{
		{"mobile with separators", "55", "(11) 99999-0000", "+5511999990000", false},
		{"defaults to brazil", "", "11999990000", "+5511999990000", false},
		{"plus prefix stripped", "+351", "912345678", "+351912345678", false},
		{"landline eight digits", "55", "3333-4444", "+5533334444", false},
		{"too short", "55", "1234567", "", true},
		{"too long", "55", "119999900001", "", true},
		{"letters rejected", "55", "11abc990000", "", true},
		{"empty local", "55", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposePhone(tt.countryCode, tt.local)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ComposePhone() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ComposePhone() = %q, want %q", got, tt.want)
			}
		})
	}
}
