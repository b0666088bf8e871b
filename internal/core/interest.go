// Package core holds the pool domain model and the interest and
// ledger arithmetic. Everything here is pure: no I/O, no globals,
// time enters only through the calculator's injectable clock.
package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// CompoundingPolicy selects how accrued interest is compounded.
type CompoundingPolicy string

const (
	PolicyDaily   CompoundingPolicy = "daily"
	PolicyMonthly CompoundingPolicy = "monthly"

	// Canonical day-to-month conversion for the monthly policy.
	daysPerMonth = 30.0
)

// ParsePolicy converts a configuration string into a CompoundingPolicy.
func ParsePolicy(s string) (CompoundingPolicy, error) {
	switch CompoundingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyDaily:
		return PolicyDaily, nil
	case PolicyMonthly:
		return PolicyMonthly, nil
	default:
		return "", fmt.Errorf("unknown compounding policy %q", s)
	}
}

// Calculator computes accrued compound interest for dated principal
// amounts under a fixed annual rate. The zero value is not usable;
// construct with NewCalculator.
type Calculator struct {
	Rate   float64
	Policy CompoundingPolicy

	// Now supplies the evaluation clock. Tests fix it to make
	// accrual deterministic.
	Now func() time.Time
}

// NewCalculator returns a Calculator using the wall clock.
func NewCalculator(rate float64, policy CompoundingPolicy) Calculator {
	return Calculator{Rate: rate, Policy: policy, Now: time.Now}
}

// Today returns the current calendar date from the calculator's clock.
func (c Calculator) Today() Date {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return DateOf(now())
}

// Accrued returns the compound interest earned on amount between its
// contribution date and today. Future-dated contributions accrue
// nothing; they are not an error.
func (c Calculator) Accrued(amount float64, date Date) float64 {
	days := date.DaysUntil(c.Today())
	if days <= 0 {
		return 0
	}

	var total float64
	switch c.Policy {
	case PolicyMonthly:
		months := float64(days) / daysPerMonth
		total = amount * math.Pow(1+c.Rate/12, months)
	default:
		total = amount * math.Pow(1+c.Rate/365, float64(days))
	}
	return total - amount
}
