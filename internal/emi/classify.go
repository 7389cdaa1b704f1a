package emi

import (
	"time"

	"microfin-backend/internal/domain"
)

// DayClassification is the result of matching one due date against a loan's
// payment ledger.
type DayClassification struct {
	Status  domain.DayStatus
	Amount  float64
	Matched []domain.PaymentRecord
}

// statusSeverity ranks day statuses worst-first for merging. A day where any
// contributing loan is unpaid must never render as settled, so missed
// dominates everything and paid yields to everything.
var statusSeverity = map[domain.DayStatus]int{
	domain.DayStatusMissed:  0,
	domain.DayStatusPartial: 1,
	domain.DayStatusDue:     2,
	domain.DayStatusAdvance: 3,
	domain.DayStatusPaid:    4,
}

// WorseStatus picks the more severe of two day statuses. An empty status
// always loses.
func WorseStatus(a, b domain.DayStatus) domain.DayStatus {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if statusSeverity[b] < statusSeverity[a] {
		return b
	}
	return a
}

// Classify matches a due date against a payment ledger. A record matches
// when its payment date falls on the same calendar day as the due date —
// exact day equality, no tolerance window. Multiple matches sum their
// amounts and merge status worst-first. With no match the due date is
// "missed" when strictly before today, otherwise "due".
func Classify(dueDate time.Time, history []domain.PaymentRecord, today time.Time) DayClassification {
	var cls DayClassification
	for _, rec := range history {
		if !SameDay(rec.PaymentDate, dueDate) {
			continue
		}
		cls.Matched = append(cls.Matched, rec)
		cls.Amount += rec.Amount
		cls.Status = WorseStatus(cls.Status, paymentDayStatus(rec.Status))
	}
	if len(cls.Matched) > 0 {
		return cls
	}

	if DateOnly(dueDate).Before(DateOnly(today)) {
		cls.Status = domain.DayStatusMissed
	} else {
		cls.Status = domain.DayStatusDue
	}
	return cls
}

func paymentDayStatus(s domain.PaymentStatus) domain.DayStatus {
	switch s {
	case domain.PaymentStatusPaid:
		return domain.DayStatusPaid
	case domain.PaymentStatusPartial:
		return domain.DayStatusPartial
	case domain.PaymentStatusAdvance:
		return domain.DayStatusAdvance
	default:
		return domain.DayStatusDue
	}
}
