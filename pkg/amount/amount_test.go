package amount

import "testing"

func TestAddZero(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed amounts", "Something $.12, $1, $1.0, ending with $.", "Something $0.12, $1, $1.0, ending with $."},
		{"empty", "", ""},
		{"only bare cents", "$.5", "$0.5"},
		{"multiple", "$.1 and $.99", "$0.1 and $0.99"},
		{"already complete", "$0.12", "$0.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AddZero(tt.input)
			if result != tt.expected {
				t.Errorf("AddZero(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"embedded", "something something $12.34 blah blah", "$12.34", true},
		{"thousands", "CARD, 1234 Payment $1,977.91", "$1,977.91", true},
		{"first wins", "$1.00 then $2.00", "$1.00", true},
		{"none", "no money here", "", false},
		{"bare symbol", "just a $ sign", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, found := Find(tt.input)
			if result != tt.expected || found != tt.found {
				t.Errorf("Find(%q) = (%q, %v), expected (%q, %v)", tt.input, result, found, tt.expected, tt.found)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"plain", "$12.34", "12.34", false},
		{"thousands", "$1,234.56", "1234.56", false},
		{"leading minus", "-$5", "-5", false},
		{"inner minus", "$-5.25", "-5.25", false},
		{"no symbol", "12.34", "", true},
		{"symbol only", "$", "", true},
		{"garbage", "$abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("Parse(%q) error = %v, expectErr = %v", tt.input, err, tt.expectErr)
			}
			if tt.expectErr {
				return
			}
			if result.String() != tt.expected {
				t.Errorf("Parse(%q) = %s, expected %s", tt.input, result.String(), tt.expected)
			}
		})
	}
}
