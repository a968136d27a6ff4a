package validation

import (
	"testing"

	"github.com/mhollis/unit-economics/pkg/constants"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{"Pretty format", constants.OutputFormatPretty, false},
		{"CSV format", constants.OutputFormatCSV, false},
		{"Unknown format", "json", true},
		{"Empty format", "", true},
		{"Case sensitive", "Pretty", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error, got nil", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestClampNonNegative(t *testing.T) {
	if got := ClampNonNegative(-5); got != 0 {
		t.Errorf("ClampNonNegative(-5) = %v, expected 0", got)
	}
	if got := ClampNonNegative(5); got != 5 {
		t.Errorf("ClampNonNegative(5) = %v, expected 5", got)
	}
	if got := ClampNonNegative(0); got != 0 {
		t.Errorf("ClampNonNegative(0) = %v, expected 0", got)
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Within range", 50, 50},
		{"Negative", -10, 0},
		{"Over hundred", 150, 100},
		{"At bounds", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPercent(tt.input); got != tt.expected {
				t.Errorf("ClampPercent(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClampRate(t *testing.T) {
	if got := ClampRate(1.5); got != 1 {
		t.Errorf("ClampRate(1.5) = %v, expected 1", got)
	}
	if got := ClampRate(-0.5); got != 0 {
		t.Errorf("ClampRate(-0.5) = %v, expected 0", got)
	}
	if got := ClampRate(0.05); got != 0.05 {
		t.Errorf("ClampRate(0.05) = %v, expected 0.05", got)
	}
}

func TestClampAdjustmentBounds(t *testing.T) {
	tests := []struct {
		name     string
		clamp    func(float64) float64
		input    float64
		expected float64
	}{
		{"Purchase value below min", ClampPurchaseValuePct, -80, constants.PurchaseValuePctMin},
		{"Purchase value above max", ClampPurchaseValuePct, 150, constants.PurchaseValuePctMax},
		{"Purchase value in range", ClampPurchaseValuePct, 25, 25},
		{"CAC below min", ClampCACPct, -80, constants.CACPctMin},
		{"CAC above max", ClampCACPct, 80, constants.CACPctMax},
		{"CAC in range", ClampCACPct, -20, -20},
		{"Retention below min", ClampRetentionPct, -80, constants.RetentionPctMin},
		{"Retention above max", ClampRetentionPct, 150, constants.RetentionPctMax},
		{"Retention in range", ClampRetentionPct, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clamp(tt.input); got != tt.expected {
				t.Errorf("clamp(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
