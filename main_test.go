package main

import "testing"

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected int
		wantErr  bool
	}{
		{"Valid Port", []string{"prog", "9000"}, 9000, false},
		{"Port Zero", []string{"prog", "0"}, 0, false},
		{"Missing Port", []string{"prog"}, 0, true},
		{"Too Many Arguments", []string{"prog", "9000", "extra"}, 0, true},
		{"Non Numeric", []string{"prog", "http"}, 0, true},
		{"Negative", []string{"prog", "-1"}, 0, true},
		{"Too Large", []string{"prog", "70000"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if port != tt.expected {
				t.Errorf("parseArgs() = %d, expected %d", port, tt.expected)
			}
		})
	}
}
