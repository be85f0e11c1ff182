package versioning

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b     string
		expected Comparison
	}{
		{"1.0.0", "2.0.0", ComparisonLess},
		{"2.0.0", "1.0.0", ComparisonGreater},
		{"1.2.3", "1.2.3", ComparisonEqual},
		{"v1.2.3", "1.2.3", ComparisonEqual},
		{"1.0.0-rc.1", "1.0.0", ComparisonLess},
		{" 1.0.0 ", "1.0.1", ComparisonLess},
		{"1.0", "1.0.0", ComparisonEqual},
		{"rev-42", "1.0.0", ComparisonUnknown},
		{"1.0.0", "latest", ComparisonUnknown},
		{"", "", ComparisonUnknown},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.expected {
			t.Errorf("Compare(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestIsComparable(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1.0.0", true},
		{"v2.1.0", true},
		{"1.0.0-beta.2", true},
		{"latest", false},
		{"rev-42-final", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsComparable(tt.input); got != tt.expected {
			t.Errorf("IsComparable(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestComparisonString(t *testing.T) {
	tests := []struct {
		c        Comparison
		expected string
	}{
		{ComparisonLess, "less"},
		{ComparisonEqual, "equal"},
		{ComparisonGreater, "greater"},
		{ComparisonUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, expected %q", tt.c, got, tt.expected)
		}
	}
}
