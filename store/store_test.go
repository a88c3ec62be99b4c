package store

import "testing"

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		existing []string
		want     string
	}{
		{"no siblings", "Notes", nil, "Notes"},
		{"no collision", "Work", []string{"Notes", "Personal"}, "Work"},
		{"first collision", "Notes", []string{"Notes"}, "Notes (1)"},
		{"second collision", "Notes", []string{"Notes", "Notes (1)"}, "Notes (2)"},
		{"gap is reused", "Notes", []string{"Notes", "Notes (2)"}, "Notes (1)"},
		{"suffixed input collides again", "Notes (1)", []string{"Notes (1)"}, "Notes (1) (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueName(tt.input, tt.existing); got != tt.want {
				t.Errorf("UniqueName(%q, %v) = %q, want %q", tt.input, tt.existing, got, tt.want)
			}
		})
	}
}
