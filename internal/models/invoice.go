// ABOUTME: Invoice value object with derived GST total
// ABOUTME: Never persisted; generated and returned within a single request
package models

import "math"

// GSTRate is the fixed consumption tax rate applied when requested.
const GSTRate = 0.18

// Invoice describes one billable line for a brand collaboration.
type Invoice struct {
	Brand      string  `json:"brand"`
	Service    string  `json:"service"`
	Amount     float64 `json:"amount"`
	IncludeGST bool    `json:"include_gst"`
}

// Total returns the payable amount, with 18% GST applied and rounded to
// two decimal places when IncludeGST is set.
func (i Invoice) Total() float64 {
	if !i.IncludeGST {
		return i.Amount
	}
	return math.Round(i.Amount*(1+GSTRate)*100) / 100
}
