// Package pipeline wires the engine stages together: cleaning feeds an
// immutable record set into deduplication, metrics and recurrence, which run
// independently and hand their tables to the presentation collaborators.
package pipeline

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"BoletoReport/boletos/cleaning"
	"BoletoReport/boletos/dedupe"
	"BoletoReport/boletos/metrics"
	"BoletoReport/boletos/recurrence"
	"BoletoReport/boletos/status"
)

// Config is the engine-facing slice of the run configuration.
type Config struct {
	PaidStatuses []string
	OpenStatuses []string
	TopN         int
}

// Result is the full hand-off artifact consumed by report, export and chart
// collaborators. Everything in it is derived once per run; reprocessing
// means rerunning from raw input.
type Result struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Records  []cleaning.Record  `json:"records"`
	Findings []cleaning.Finding `json:"findings"`

	Overview    metrics.Overview       `json:"overview"`
	Overall     []metrics.AggregateRow `json:"overall"`
	ByBank      []metrics.AggregateRow `json:"by_bank"`
	ByMonth     []metrics.AggregateRow `json:"by_month"`
	ByBankMonth []metrics.AggregateRow `json:"by_bank_month"`

	RankingByDebt  []metrics.DebtorRank `json:"ranking_by_debt"`
	RankingByCount []metrics.DebtorRank `json:"ranking_by_count"`

	Recurrence        []recurrence.Record          `json:"recurrence"`
	TopRecurrent      []recurrence.Record          `json:"top_recurrent"`
	RecurrenceByMonth []recurrence.MonthBreakdown  `json:"recurrence_by_month"`
	Changes           []recurrence.Change          `json:"changes"`
	TopWorsened       []recurrence.Change          `json:"top_worsened"`
	TopImproved       []recurrence.Change          `json:"top_improved"`

	Quality         metrics.QualitySummary `json:"quality"`
	UnknownStatuses []string               `json:"unknown_statuses"`

	TotalRows int `json:"total_rows"`
	ValidRows int `json:"valid_rows"`
	OpenRows  int `json:"open_rows"`
}

// Run executes the engine over an already-loaded row batch.
func Run(rows []cleaning.RawRow, cfg Config) *Result {
	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	classifier := status.NewClassifier(cfg.PaidStatuses, cfg.OpenStatuses)
	cleaner := cleaning.NewCleaner(classifier)
	res.Records = cleaner.CleanAll(rows)
	res.TotalRows = len(res.Records)
	for i := range res.Records {
		if res.Records[i].IsValid {
			res.ValidRows++
		}
		if res.Records[i].IsOpen() {
			res.OpenRows++
		}
	}
	log.Printf("[Pipeline] cleaned %d rows (%d valid, %d open)", res.TotalRows, res.ValidRows, res.OpenRows)

	// The three analysis stages only read the normalized set (dedupe adds
	// flags no other stage inspects), so they run side by side.
	var wg sync.WaitGroup
	var dup dedupe.Result

	wg.Add(3)
	go func() {
		defer wg.Done()
		dup = dedupe.FindDuplicates(res.Records)
	}()
	go func() {
		defer wg.Done()
		res.Overview = metrics.ComputeOverview(res.Records)
		res.Overall = metrics.Summarize(res.Records, metrics.DimOverall)
		res.ByBank = metrics.Summarize(res.Records, metrics.DimBank)
		res.ByMonth = metrics.Summarize(res.Records, metrics.DimMonth)
		res.ByBankMonth = metrics.Summarize(res.Records, metrics.DimBankMonth)
		res.RankingByDebt = metrics.TopDebtorsByDebt(res.Records, cfg.TopN)
		res.RankingByCount = metrics.TopDebtorsByBillCount(res.Records, cfg.TopN)
	}()
	go func() {
		defer wg.Done()
		res.Recurrence = recurrence.Compute(res.Records)
		res.TopRecurrent = recurrence.TopRecurrent(res.Recurrence, cfg.TopN)
		res.RecurrenceByMonth = recurrence.ComputeByMonth(res.Records)
		res.Changes = recurrence.ComputeChanges(res.Records)
		res.TopWorsened = recurrence.TopWorsened(res.Changes, cfg.TopN)
		res.TopImproved = recurrence.TopImproved(res.Changes, cfg.TopN)
	}()
	wg.Wait()

	res.Findings = append(res.Findings, cleaner.Findings()...)
	res.Findings = append(res.Findings, dup.Findings...)
	res.Quality = metrics.ComputeQuality(res.Records, dup, res.Findings)
	res.UnknownStatuses = classifier.UnknownStatuses()
	res.FinishedAt = time.Now()

	log.Printf("[Pipeline] run %s finished: %d findings, %d duplicate groups",
		res.RunID, len(res.Findings), dup.GroupsByOurNumber+dup.GroupsByYourNumber)
	return res
}
