package jobs

import (
	"context"
	"sort"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
	"microfin-backend/internal/logger"
	"microfin-backend/internal/service"
)

// SendCollectionSummary mails every active admin the day's collection totals.
func (jr *JobRunner) SendCollectionSummary() {
	jr.runWithRecovery("SendCollectionSummary", func() {
		ctx := context.Background()
		today := emi.DateOnly(jr.now())

		payments, err := jr.store.Loans.PaymentsRecordedOn(ctx, today)
		if err != nil {
			logger.Error("Failed to load today's payments", "error", err)
			return
		}
		if len(payments) == 0 {
			logger.Info("No collections recorded today, skipping summary")
			return
		}

		var totalAmount float64
		byOffice := make(map[string]*service.OfficeTotal)
		for _, p := range payments {
			totalAmount += p.Amount
			o, ok := byOffice[p.OfficeCategory]
			if !ok {
				o = &service.OfficeTotal{Office: p.OfficeCategory}
				byOffice[p.OfficeCategory] = o
			}
			o.Amount += p.Amount
			o.Count++
		}

		perOffice := make([]service.OfficeTotal, 0, len(byOffice))
		for _, o := range byOffice {
			perOffice = append(perOffice, *o)
		}
		sort.Slice(perOffice, func(i, j int) bool { return perOffice[i].Office < perOffice[j].Office })

		members, err := jr.store.Members.List(ctx)
		if err != nil {
			logger.Error("Failed to list members", "error", err)
			return
		}

		sent := 0
		for _, m := range members {
			if m.Role != domain.MemberRoleAdmin || !m.Active || m.Email == "" {
				continue
			}
			if err := jr.services.Email.SendCollectionSummary(ctx, m.Email, today, totalAmount, len(payments), perOffice); err != nil {
				logger.Error("Failed to send collection summary", "admin_email", m.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent collection summary",
			"payments", len(payments),
			"total_amount", totalAmount,
			"recipients", sent)
	})
}
