package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/cleaning"
	"BoletoReport/boletos/dedupe"
	"BoletoReport/boletos/status"
)

// DebtorRef points at one debtor with the amount that singled them out.
type DebtorRef struct {
	PersonID       string          `json:"person_id"`
	WaterPenaltyID string          `json:"water_penalty_id"`
	PayerName      string          `json:"payer_name"`
	Amount         decimal.Decimal `json:"amount"`
}

// BoletoRef points at one individual open boleto.
type BoletoRef struct {
	Bank           string          `json:"bank"`
	OurNumber      string          `json:"our_number"`
	WaterPenaltyID string          `json:"water_penalty_id"`
	PayerName      string          `json:"payer_name"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}

// Overview is the headline KPI block over the valid OPEN subset.
type Overview struct {
	UniqueDebtors  int             `json:"unique_debtors"`
	OpenBills      int             `json:"open_bills"`
	TotalOpenDebt  decimal.Decimal `json:"total_open_debt"`
	MeanPerDebtor  float64         `json:"mean_per_debtor"`
	LargestDebtor  *DebtorRef      `json:"largest_debtor,omitempty"`
	SmallestDebtor *DebtorRef      `json:"smallest_debtor,omitempty"`
	LargestBoleto  *BoletoRef      `json:"largest_boleto,omitempty"`
	SmallestBoleto *BoletoRef      `json:"smallest_boleto,omitempty"`
}

// ComputeOverview builds the KPI block: totals, mean ticket per debtor and
// the extremes both per debtor and per individual boleto.
func ComputeOverview(records []cleaning.Record) Overview {
	ov := Overview{TotalOpenDebt: decimal.Zero}

	debtors := aggregateDebtors(records)
	ov.UniqueDebtors = len(debtors)
	for _, agg := range debtors {
		ov.OpenBills += agg.bills
		ov.TotalOpenDebt = ov.TotalOpenDebt.Add(agg.total)
	}
	if ov.UniqueDebtors > 0 {
		ov.MeanPerDebtor = ov.TotalOpenDebt.InexactFloat64() / float64(ov.UniqueDebtors)
	}

	var largest, smallest *debtorAgg
	for _, agg := range debtors {
		if largest == nil || agg.total.GreaterThan(largest.total) ||
			(agg.total.Equal(largest.total) && agg.personID < largest.personID) {
			largest = agg
		}
		if smallest == nil || agg.total.LessThan(smallest.total) ||
			(agg.total.Equal(smallest.total) && agg.personID < smallest.personID) {
			smallest = agg
		}
	}
	if largest != nil {
		ov.LargestDebtor = &DebtorRef{
			PersonID:       largest.personID,
			WaterPenaltyID: largest.waterPenaltyID,
			PayerName:      largest.payerName,
			Amount:         largest.total,
		}
		ov.SmallestDebtor = &DebtorRef{
			PersonID:       smallest.personID,
			WaterPenaltyID: smallest.waterPenaltyID,
			PayerName:      smallest.payerName,
			Amount:         smallest.total,
		}
	}

	var maxRec, minRec *cleaning.Record
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		if maxRec == nil || rec.Amount.GreaterThan(maxRec.Amount) {
			maxRec = rec
		}
		if minRec == nil || rec.Amount.LessThan(minRec.Amount) {
			minRec = rec
		}
	}
	if maxRec != nil {
		ov.LargestBoleto = boletoRef(maxRec)
		ov.SmallestBoleto = boletoRef(minRec)
	}
	return ov
}

func boletoRef(rec *cleaning.Record) *BoletoRef {
	return &BoletoRef{
		Bank:           rec.Bank,
		OurNumber:      rec.OurNumber,
		WaterPenaltyID: rec.WaterPenaltyID,
		PayerName:      rec.PayerName,
		Amount:         rec.Amount,
		DueDate:        rec.DueDate,
	}
}

// QualitySummary condenses data-quality counters for the report.
type QualitySummary struct {
	TotalRows          int     `json:"total_rows"`
	InvalidRows        int     `json:"invalid_rows"`
	InvalidAmountRows  int     `json:"invalid_amount_rows"`
	InvalidDateRows    int     `json:"invalid_date_rows"`
	PctInvalidAmount   float64 `json:"pct_invalid_amount"`
	PctInvalidDate     float64 `json:"pct_invalid_date"`
	UnknownStatusRows  int     `json:"unknown_status_rows"`
	GroupsByOurNumber  int     `json:"duplicate_groups_by_our_number"`
	GroupsByYourNumber int     `json:"duplicate_groups_by_your_number"`
	FindingCount       int     `json:"finding_count"`
}

// ComputeQuality summarizes row validity and duplicate detection over the
// full record set, invalid records included.
func ComputeQuality(records []cleaning.Record, dup dedupe.Result, findings []cleaning.Finding) QualitySummary {
	qs := QualitySummary{
		TotalRows:          len(records),
		GroupsByOurNumber:  dup.GroupsByOurNumber,
		GroupsByYourNumber: dup.GroupsByYourNumber,
		FindingCount:       len(findings),
	}
	for i := range records {
		rec := &records[i]
		if !rec.IsValid {
			qs.InvalidRows++
		}
		if !rec.AmountValid {
			qs.InvalidAmountRows++
		}
		if rec.DueDate == nil {
			qs.InvalidDateRows++
		}
		if rec.StatusClass == status.CategoryUnknown {
			qs.UnknownStatusRows++
		}
	}
	if qs.TotalRows > 0 {
		qs.PctInvalidAmount = float64(qs.InvalidAmountRows) / float64(qs.TotalRows) * 100
		qs.PctInvalidDate = float64(qs.InvalidDateRows) / float64(qs.TotalRows) * 100
	}
	return qs
}
