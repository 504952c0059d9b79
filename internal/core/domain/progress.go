package domain

// PaymentProgress returns the percentage of the budget covered by payments,
// capped at 100. A zero budget yields 0 rather than dividing by zero.
func PaymentProgress(totalPaid, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	p := totalPaid / budget * 100
	if p > 100 {
		return 100
	}
	return p
}

// IsPaymentCompleted reports whether payments have reached the budget.
func IsPaymentCompleted(totalPaid, budget float64) bool {
	return totalPaid >= budget
}

// ShouldRevertStatus reports whether a finished project must be pushed back
// to started because its payment total fell below the budget. Evaluated by
// the write path after a payment is deleted.
func ShouldRevertStatus(status ProjectStatus, totalPaid, budget float64) bool {
	return status == StatusFinished && totalPaid < budget
}
