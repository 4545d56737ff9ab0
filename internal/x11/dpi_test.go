package x11

import "testing"

func TestParseXftDPI(t *testing.T) {
	tests := []struct {
		name      string
		resources string
		want      int
		ok        bool
	}{
		{"plain", "Xft.dpi:\t144\nXft.antialias:\t1\n", 144, true},
		{"fractional", "Xcursor.size: 24\nXft.dpi: 120.4\n", 120, true},
		{"missing", "Xft.antialias: 1\n", 0, false},
		{"garbage", "Xft.dpi: lots\n", 0, false},
		{"zero", "Xft.dpi: 0\n", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseXftDPI(tt.resources)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("parseXftDPI = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
