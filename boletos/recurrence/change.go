package recurrence

import (
	"sort"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/cleaning"
)

// Change is the month-over-month debt delta for one debtor across one pair of
// adjacent months. A side where the debtor has no open balance counts as
// zero: a debtor absent last month but present now is a new appearance, a
// debtor absent now is treated as fully resolved.
type Change struct {
	PersonID       string          `json:"person_id"`
	WaterPenaltyID string          `json:"water_penalty_id"`
	PayerName      string          `json:"payer_name"`
	PrevMonth      string          `json:"prev_month"`
	Month          string          `json:"month"`
	PrevAmount     decimal.Decimal `json:"prev_amount"`
	Amount         decimal.Decimal `json:"amount"`
	Delta          decimal.Decimal `json:"delta"`
	PctDelta       float64         `json:"pct_delta"`
}

// ComputeChanges builds deltas for every pair of chronologically adjacent
// months actually present in the data. Months with no rows at all are
// skipped, not treated as zero-debt months: a missing month is evidence of
// absent data, not of resolution. Output is ordered by month pair, then by
// descending delta, ties by ascending person id.
func ComputeChanges(records []cleaning.Record) []Change {
	type debtorInfo struct {
		waterPenaltyID string
		payerName      string
	}
	perMonth := make(map[string]map[string]decimal.Decimal)
	info := make(map[string]debtorInfo)
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		if perMonth[rec.ReferenceMonth] == nil {
			perMonth[rec.ReferenceMonth] = make(map[string]decimal.Decimal)
		}
		perMonth[rec.ReferenceMonth][rec.PersonID] = perMonth[rec.ReferenceMonth][rec.PersonID].Add(rec.Amount)
		if _, ok := info[rec.PersonID]; !ok {
			info[rec.PersonID] = debtorInfo{rec.WaterPenaltyID, rec.PayerName}
		}
	}

	months := make([]string, 0, len(perMonth))
	for m := range perMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	var out []Change
	for i := 1; i < len(months); i++ {
		prev, cur := months[i-1], months[i]
		persons := make(map[string]struct{})
		for p := range perMonth[prev] {
			persons[p] = struct{}{}
		}
		for p := range perMonth[cur] {
			persons[p] = struct{}{}
		}

		pairChanges := make([]Change, 0, len(persons))
		for p := range persons {
			prevAmt := perMonth[prev][p]
			curAmt := perMonth[cur][p]
			ch := Change{
				PersonID:       p,
				WaterPenaltyID: info[p].waterPenaltyID,
				PayerName:      info[p].payerName,
				PrevMonth:      prev,
				Month:          cur,
				PrevAmount:     prevAmt,
				Amount:         curAmt,
				Delta:          curAmt.Sub(prevAmt),
			}
			if prevAmt.IsPositive() {
				ch.PctDelta = ch.Delta.InexactFloat64() / prevAmt.InexactFloat64() * 100
			}
			pairChanges = append(pairChanges, ch)
		}
		sort.Slice(pairChanges, func(a, b int) bool {
			if !pairChanges[a].Delta.Equal(pairChanges[b].Delta) {
				return pairChanges[a].Delta.GreaterThan(pairChanges[b].Delta)
			}
			return pairChanges[a].PersonID < pairChanges[b].PersonID
		})
		out = append(out, pairChanges...)
	}
	return out
}

// TopWorsened returns the topN changes with the largest positive deltas
// across all month pairs.
func TopWorsened(changes []Change, topN int) []Change {
	return topByDelta(changes, topN, true)
}

// TopImproved returns the topN changes with the most negative deltas.
func TopImproved(changes []Change, topN int) []Change {
	return topByDelta(changes, topN, false)
}

func topByDelta(changes []Change, topN int, worsened bool) []Change {
	ordered := make([]Change, len(changes))
	copy(ordered, changes)
	sort.Slice(ordered, func(a, b int) bool {
		if !ordered[a].Delta.Equal(ordered[b].Delta) {
			if worsened {
				return ordered[a].Delta.GreaterThan(ordered[b].Delta)
			}
			return ordered[a].Delta.LessThan(ordered[b].Delta)
		}
		return ordered[a].PersonID < ordered[b].PersonID
	})
	if topN > 0 && len(ordered) > topN {
		ordered = ordered[:topN]
	}
	return ordered
}
