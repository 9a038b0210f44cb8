// Package metrics aggregates valid OPEN boletos into descriptive summaries
// grouped by nothing, bank, month, or bank and month. Every table is fully
// regenerated per run over the immutable record set.
package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/cleaning"
)

// Dimension selects the grouping of an aggregate table.
type Dimension int

const (
	DimOverall Dimension = iota
	DimBank
	DimMonth
	DimBankMonth
)

// Stats holds descriptive statistics over the OPEN amounts of one group.
// Sum, Min and Max keep decimal precision; the interpolated statistics are
// computed in float64.
type Stats struct {
	BillCount   int             `json:"bill_count"`
	DebtorCount int             `json:"debtor_count"`
	Sum         decimal.Decimal `json:"sum"`
	Mean        float64         `json:"mean"`
	Median      float64         `json:"median"`
	StdDev      float64         `json:"std_dev"`
	P25         float64         `json:"p25"`
	P75         float64         `json:"p75"`
	P90         float64         `json:"p90"`
	P95         float64         `json:"p95"`
	Min         decimal.Decimal `json:"min"`
	Max         decimal.Decimal `json:"max"`
}

// AggregateRow is one group of a summary table. Bank and Month are empty when
// the table's dimension does not include them.
type AggregateRow struct {
	Bank  string `json:"bank,omitempty"`
	Month string `json:"month,omitempty"`
	Stats
}

// Summarize computes the aggregate table for one dimension over the valid
// OPEN subset. Groups are exhaustive over the values present in the data and
// ordered ascending by group key.
func Summarize(records []cleaning.Record, dim Dimension) []AggregateRow {
	type group struct {
		bank, month string
	}
	buckets := make(map[group][]*cleaning.Record)
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		g := group{}
		if dim == DimBank || dim == DimBankMonth {
			g.bank = rec.Bank
		}
		if dim == DimMonth || dim == DimBankMonth {
			g.month = rec.ReferenceMonth
		}
		buckets[g] = append(buckets[g], rec)
	}
	if dim == DimOverall && len(buckets) == 0 {
		// An overall table always has its single row, even when empty.
		return []AggregateRow{{Stats: computeStats(nil)}}
	}

	keys := make([]group, 0, len(buckets))
	for g := range buckets {
		keys = append(keys, g)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].bank != keys[j].bank {
			return keys[i].bank < keys[j].bank
		}
		return keys[i].month < keys[j].month
	})

	rows := make([]AggregateRow, 0, len(keys))
	for _, g := range keys {
		rows = append(rows, AggregateRow{
			Bank:  g.bank,
			Month: g.month,
			Stats: computeStats(buckets[g]),
		})
	}
	return rows
}

func computeStats(recs []*cleaning.Record) Stats {
	s := Stats{Sum: decimal.Zero, Min: decimal.Zero, Max: decimal.Zero}
	if len(recs) == 0 {
		return s
	}

	amounts := make([]float64, 0, len(recs))
	debtors := make(map[string]struct{})
	for i, rec := range recs {
		s.BillCount++
		debtors[rec.PersonID] = struct{}{}
		s.Sum = s.Sum.Add(rec.Amount)
		amounts = append(amounts, rec.Amount.InexactFloat64())
		if i == 0 {
			s.Min = rec.Amount
			s.Max = rec.Amount
			continue
		}
		if rec.Amount.LessThan(s.Min) {
			s.Min = rec.Amount
		}
		if rec.Amount.GreaterThan(s.Max) {
			s.Max = rec.Amount
		}
	}
	s.DebtorCount = len(debtors)

	sort.Float64s(amounts)
	s.Mean = s.Sum.InexactFloat64() / float64(len(amounts))
	s.Median = Percentile(amounts, 50)
	s.P25 = Percentile(amounts, 25)
	s.P75 = Percentile(amounts, 75)
	s.P90 = Percentile(amounts, 90)
	s.P95 = Percentile(amounts, 95)
	s.StdDev = sampleStdDev(amounts, s.Mean)
	return s
}

// Percentile computes the p-th percentile of sorted values with linear
// interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// sampleStdDev is the n-1 standard deviation, zero for fewer than two values.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
