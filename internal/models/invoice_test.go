// ABOUTME: Tests for the Invoice value object
// ABOUTME: Verifies GST math and rounding to two decimal places
package models

import "testing"

func TestInvoiceTotal_WithoutGST(t *testing.T) {
	inv := Invoice{Brand: "Acme", Service: "Sponsorship", Amount: 100}

	if got := inv.Total(); got != 100 {
		t.Errorf("Total() = %v, want 100", got)
	}
}

func TestInvoiceTotal_WithGST(t *testing.T) {
	inv := Invoice{Brand: "Acme", Service: "Sponsorship", Amount: 100, IncludeGST: true}

	if got := inv.Total(); got != 118.00 {
		t.Errorf("Total() = %v, want 118.00", got)
	}
}

func TestInvoiceTotal_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{99.99, 117.99}, // 117.9882
		{10.55, 12.45},  // 12.449
		{1, 1.18},
		{0.01, 0.01}, // 0.0118
	}

	for _, tt := range tests {
		inv := Invoice{Amount: tt.amount, IncludeGST: true}
		if got := inv.Total(); got != tt.want {
			t.Errorf("Total() for %v = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

func TestInvoiceTotal_IdempotentUnderReformat(t *testing.T) {
	inv := Invoice{Amount: 250.50}

	if inv.Total() != inv.Amount {
		t.Error("Total() without GST must equal the base amount")
	}
	if inv.Total() != inv.Total() {
		t.Error("Total() must be deterministic")
	}
}
