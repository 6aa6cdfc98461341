// Package schedule derives maturity terms for a loan: maturity date,
// number of payments, and the periodic amortized payment for a lender's
// contribution.
package schedule

import (
	"fmt"
	"math"
	"time"
)

const (
	Weekly    = "Weekly"
	BiWeekly  = "Bi-Weekly"
	Monthly   = "Monthly"
	Quarterly = "Quarterly"
	Annually  = "Annually"
)

var paymentsPerYear = map[string]int{
	Weekly:    52,
	BiWeekly:  26,
	Monthly:   12,
	Quarterly: 4,
	Annually:  1,
}

func ValidFrequency(freq string) bool {
	_, ok := paymentsPerYear[freq]
	return ok
}

// MaturityDate adds the term length in months to the start date.
func MaturityDate(start time.Time, termMonths int) time.Time {
	return start.AddDate(0, termMonths, 0)
}

// TotalPayments is payments-per-year scaled by the term in years, rounded
// to the nearest whole payment (a 1-month weekly loan still gets 4).
func TotalPayments(freq string, termMonths int) (int, error) {
	perYear, ok := paymentsPerYear[freq]
	if !ok {
		return 0, fmt.Errorf("unknown payment frequency %q", freq)
	}
	n := int(math.Round(float64(perYear) * float64(termMonths) / 12.0))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// PeriodicPayment computes the amortized per-period payment on a
// contribution at the given annual rate (percentage). A zero rate
// degrades to straight-line repayment.
func PeriodicPayment(contribution, annualRatePct float64, freq string, totalPayments int) (float64, error) {
	if totalPayments <= 0 {
		return 0, fmt.Errorf("total payments must be positive, got %d", totalPayments)
	}
	perYear, ok := paymentsPerYear[freq]
	if !ok {
		return 0, fmt.Errorf("unknown payment frequency %q", freq)
	}
	periodicRate := annualRatePct / 100.0 / float64(perYear)
	if periodicRate == 0 {
		return round2(contribution / float64(totalPayments)), nil
	}
	growth := math.Pow(1+periodicRate, float64(totalPayments))
	payment := contribution * periodicRate * growth / (growth - 1)
	return round2(payment), nil
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
