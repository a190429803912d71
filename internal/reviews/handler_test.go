package reviews

import (
	"testing"
	"time"
)

func TestCanEdit(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just posted", created, true},
		{"one hour later", created.Add(time.Hour), true},
		{"exactly at window", created.Add(EditWindow), true},
		{"one second past", created.Add(EditWindow + time.Second), false},
		{"days later", created.Add(72 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanEdit(created, tc.now); got != tc.want {
				t.Fatalf("CanEdit at %v = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
