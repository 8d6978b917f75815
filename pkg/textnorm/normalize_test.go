package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello world"},
		{"", ""},
		{"already lower", "already lower"},
		// Punctuation is deleted, not replaced, so joined words fuse.
		{"a,b", "ab"},
		{"don't", "dont"},
		{"Mira's  sheet.", "miras  sheet"},
		{"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", ""},
		// Non-ASCII passes through untouched.
		{"Café Über", "café über"},
		{"line1\nline2", "line1\nline2"},
	}

	for _, tc := range tests {
		result := Normalize(tc.input)
		if result != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "MIXED case; with? marks", "plain"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"What color are his eyes?", []string{"eyes"}},
		{"green eyes", []string{"green", "eyes"}},
		// Short tokens (<= 2 runes) drop out.
		{"a an ab the dragon", []string{"dragon"}},
		// Fused punctuation survivors still face the length filter.
		{"a,b", nil},
		{"", nil},
		{"the of and to", nil},
		{"What instrument is she playing?", nil},
		{"Sunken Tower ruin", []string{"sunken", "tower", "ruin"}},
	}

	for _, tc := range tests {
		result := Tokenize(tc.input)
		if len(tc.expected) == 0 {
			if len(result) != 0 {
				t.Errorf("Tokenize(%q) = %v, want empty", tc.input, result)
			}
			continue
		}
		if !reflect.DeepEqual(result, tc.expected) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, result, tc.expected)
		}
	}
}

func TestTokenizeNeverNil(t *testing.T) {
	if Tokenize("") == nil {
		t.Error("Tokenize(\"\") should return an empty slice, not nil")
	}
}
