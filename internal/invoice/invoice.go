// ABOUTME: Deterministic invoice text formatter with optional 18% GST
// ABOUTME: Pure function, no I/O; callers validate via the returned ValidationError
package invoice

import (
	"fmt"
	"math"
	"strings"

	"github.com/rohitadv/creator-counsel/internal/models"
)

// ValidationError reports a rejected invoice field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the invoice fields before any rendering happens.
func Validate(inv models.Invoice) error {
	if strings.TrimSpace(inv.Brand) == "" {
		return &ValidationError{Field: "brand", Reason: "must be a non-empty string"}
	}
	if strings.TrimSpace(inv.Service) == "" {
		return &ValidationError{Field: "service", Reason: "must be a non-empty string"}
	}
	if math.IsNaN(inv.Amount) || math.IsInf(inv.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a valid number"}
	}
	if inv.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	return nil
}

// Format renders the fixed invoice layout. The GST annotation appears only
// when GST is included.
func Format(inv models.Invoice) (string, error) {
	if err := Validate(inv); err != nil {
		return "", err
	}

	gstNote := ""
	if inv.IncludeGST {
		gstNote = " (including 18% GST)"
	}

	var sb strings.Builder
	sb.WriteString("PROFESSIONAL INVOICE\n")
	sb.WriteString("--------------------\n")
	sb.WriteString(fmt.Sprintf("Client/Brand: %s\n", inv.Brand))
	sb.WriteString(fmt.Sprintf("Service Provided: %s\n", inv.Service))
	sb.WriteString(fmt.Sprintf("Total Amount: ₹%.2f%s\n", inv.Total(), gstNote))
	sb.WriteString("\n")
	sb.WriteString("Payment Terms: Due upon receipt\n")
	sb.WriteString("Thank you for your business collaboration!\n")

	return sb.String(), nil
}
