package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/cleaning"
)

// DebtorRank is one row of a debtor ranking.
type DebtorRank struct {
	Rank           int             `json:"rank"`
	PersonID       string          `json:"person_id"`
	WaterPenaltyID string          `json:"water_penalty_id"`
	PayerName      string          `json:"payer_name"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	BillCount      int             `json:"bill_count"`
	CommonStatus   string          `json:"common_status"`
}

type debtorAgg struct {
	personID       string
	waterPenaltyID string
	payerName      string
	total          decimal.Decimal
	bills          int
	statusCounts   map[string]int
}

func aggregateDebtors(records []cleaning.Record) map[string]*debtorAgg {
	debtors := make(map[string]*debtorAgg)
	for i := range records {
		rec := &records[i]
		if !rec.IsOpen() {
			continue
		}
		agg, ok := debtors[rec.PersonID]
		if !ok {
			agg = &debtorAgg{
				personID:       rec.PersonID,
				waterPenaltyID: rec.WaterPenaltyID,
				payerName:      rec.PayerName,
				total:          decimal.Zero,
				statusCounts:   make(map[string]int),
			}
			debtors[rec.PersonID] = agg
		}
		agg.total = agg.total.Add(rec.Amount)
		agg.bills++
		agg.statusCounts[rec.StatusNorm]++
	}
	return debtors
}

func (a *debtorAgg) commonStatus() string {
	best, bestCount := "", 0
	for s, n := range a.statusCounts {
		if n > bestCount || (n == bestCount && s < best) {
			best, bestCount = s, n
		}
	}
	return best
}

func toRanks(debtors map[string]*debtorAgg, topN int, less func(a, b *debtorAgg) bool) []DebtorRank {
	ordered := make([]*debtorAgg, 0, len(debtors))
	for _, agg := range debtors {
		ordered = append(ordered, agg)
	}
	sort.Slice(ordered, func(i, j int) bool { return less(ordered[i], ordered[j]) })
	if topN > 0 && len(ordered) > topN {
		ordered = ordered[:topN]
	}
	ranks := make([]DebtorRank, 0, len(ordered))
	for i, agg := range ordered {
		ranks = append(ranks, DebtorRank{
			Rank:           i + 1,
			PersonID:       agg.personID,
			WaterPenaltyID: agg.waterPenaltyID,
			PayerName:      agg.payerName,
			TotalDebt:      agg.total,
			BillCount:      agg.bills,
			CommonStatus:   agg.commonStatus(),
		})
	}
	return ranks
}

// TopDebtorsByDebt ranks debtors by total open debt, descending, ties broken
// by ascending person id for reproducible output.
func TopDebtorsByDebt(records []cleaning.Record, topN int) []DebtorRank {
	return toRanks(aggregateDebtors(records), topN, func(a, b *debtorAgg) bool {
		if !a.total.Equal(b.total) {
			return a.total.GreaterThan(b.total)
		}
		return a.personID < b.personID
	})
}

// TopDebtorsByBillCount ranks debtors by number of open bills, descending,
// ties broken by ascending person id.
func TopDebtorsByBillCount(records []cleaning.Record, topN int) []DebtorRank {
	return toRanks(aggregateDebtors(records), topN, func(a, b *debtorAgg) bool {
		if a.bills != b.bills {
			return a.bills > b.bills
		}
		return a.personID < b.personID
	})
}
