package query

import (
	"errors"
	"testing"
)

func TestClassifyNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12345", 12345},
		{"777000", 777000},
		{"-987654", -987654},
		{"-1001234567890", -1001234567890},
		{"  42  ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Classify(tt.in)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", tt.in, err)
			}
			if q.Kind != KindNumericID {
				t.Fatalf("Kind = %v, want KindNumericID", q.Kind)
			}
			if q.ID != tt.want {
				t.Errorf("ID = %d, want %d", q.ID, tt.want)
			}
		})
	}
}

func TestClassifyUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example", "@example"},
		{"@example", "@example"},
		{"@@example", "@example"},
		{"weird@@handle", "@handle"},
		{"12345abc", "@12345abc"},
		{"-notanumber", "@-notanumber"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Classify(tt.in)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", tt.in, err)
			}
			if q.Kind != KindUsername {
				t.Fatalf("Kind = %v, want KindUsername", q.Kind)
			}
			if q.Username != tt.want {
				t.Errorf("Username = %q, want %q", q.Username, tt.want)
			}
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "@", "@@"} {
		t.Run("empty_"+in, func(t *testing.T) {
			_, err := Classify(in)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("Classify(%q) = %v, want ErrInvalidQuery", in, err)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	q, err := Classify("-1001234567890")
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if got := q.Identifier(); got != "-1001234567890" {
		t.Errorf("Identifier() = %q, want %q", got, "-1001234567890")
	}

	q, err = Classify("example")
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if got := q.Identifier(); got != "@example" {
		t.Errorf("Identifier() = %q, want %q", got, "@example")
	}
}
