package shared

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tc := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "plain date",
			in:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-06-01",
		},
		{
			name: "time of day dropped",
			in:   time.Date(2025, 12, 24, 18, 30, 0, 0, time.UTC),
			want: "2025-12-24",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDate(tt.in)
			if got != tt.want {
				t.Errorf("FormatDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected distinct IDs")
	}
}
