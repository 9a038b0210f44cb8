// Package recurrence resolves debtor identity across reference months and
// measures how each debtor's outstanding balance repeats and evolves.
package recurrence

import (
	"sort"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/cleaning"
)

// Record is the per-debtor recurrence row. MonthCount is the number of
// distinct reference months with at least one valid OPEN boleto; two open
// bills in the same month still count as one month.
type Record struct {
	PersonID       string          `json:"person_id"`
	WaterPenaltyID string          `json:"water_penalty_id"`
	PayerName      string          `json:"payer_name"`
	MonthCount     int             `json:"month_count"`
	Months         []string        `json:"months"`
	TotalOpen      decimal.Decimal `json:"total_open"`
	MeanOpen       float64         `json:"mean_open"`
	BillCount      int             `json:"bill_count"`
	Reincident     bool            `json:"reincident"`
}

// MonthBreakdown counts new versus repeat debtors for one month. A debtor is
// a repeat once they appeared in any earlier month present in the data.
type MonthBreakdown struct {
	Month         string  `json:"month"`
	TotalDebtors  int     `json:"total_debtors"`
	NewDebtors    int     `json:"new_debtors"`
	RepeatDebtors int     `json:"repeat_debtors"`
	PctRepeat     float64 `json:"pct_repeat"`
}

// Compute builds the full recurrence table over valid OPEN records, single
// month debtors included. Rows are ordered by descending open bill count,
// ties by ascending person id.
func Compute(records []cleaning.Record) []Record {
	type agg struct {
		waterPenaltyID string
		payerName      string
		months         map[string]struct{}
		total          decimal.Decimal
		bills          int
	}
	debtors := make(map[string]*agg)
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		a, ok := debtors[rec.PersonID]
		if !ok {
			a = &agg{
				waterPenaltyID: rec.WaterPenaltyID,
				payerName:      rec.PayerName,
				months:         make(map[string]struct{}),
				total:          decimal.Zero,
			}
			debtors[rec.PersonID] = a
		}
		a.months[rec.ReferenceMonth] = struct{}{}
		a.total = a.total.Add(rec.Amount)
		a.bills++
	}

	out := make([]Record, 0, len(debtors))
	for personID, a := range debtors {
		months := make([]string, 0, len(a.months))
		for m := range a.months {
			months = append(months, m)
		}
		sort.Strings(months)
		r := Record{
			PersonID:       personID,
			WaterPenaltyID: a.waterPenaltyID,
			PayerName:      a.payerName,
			MonthCount:     len(months),
			Months:         months,
			TotalOpen:      a.total,
			BillCount:      a.bills,
			Reincident:     len(months) >= 2,
		}
		if a.bills > 0 {
			r.MeanOpen = a.total.InexactFloat64() / float64(a.bills)
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BillCount != out[j].BillCount {
			return out[i].BillCount > out[j].BillCount
		}
		return out[i].PersonID < out[j].PersonID
	})
	return out
}

// TopRecurrent returns the first topN rows of the recurrence table.
func TopRecurrent(table []Record, topN int) []Record {
	if topN > 0 && len(table) > topN {
		return table[:topN]
	}
	return table
}

// ComputeByMonth walks the months present in the data in ascending order and
// splits each month's debtors into new and repeat.
func ComputeByMonth(records []cleaning.Record) []MonthBreakdown {
	byMonth := make(map[string]map[string]struct{})
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		if byMonth[rec.ReferenceMonth] == nil {
			byMonth[rec.ReferenceMonth] = make(map[string]struct{})
		}
		byMonth[rec.ReferenceMonth][rec.PersonID] = struct{}{}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthBreakdown, 0, len(months))
	seen := make(map[string]struct{})
	for _, month := range months {
		mb := MonthBreakdown{Month: month}
		for personID := range byMonth[month] {
			mb.TotalDebtors++
			if _, repeated := seen[personID]; repeated {
				mb.RepeatDebtors++
			} else {
				mb.NewDebtors++
			}
		}
		if mb.TotalDebtors > 0 {
			mb.PctRepeat = float64(mb.RepeatDebtors) / float64(mb.TotalDebtors) * 100
		}
		for personID := range byMonth[month] {
			seen[personID] = struct{}{}
		}
		out = append(out, mb)
	}
	return out
}
