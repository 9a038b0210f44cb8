// Package export renders the engine's hand-off tables to CSV files and an
// XLSX workbook. It holds no business logic: every number is precomputed by
// the pipeline.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/metrics"
	"BoletoReport/boletos/pipeline"
	"BoletoReport/boletos/recurrence"
)

// Table is one exportable summary: a file name, a human sheet name, a header
// and pre-formatted string rows.
type Table struct {
	Name   string
	Sheet  string
	Header []string
	Rows   [][]string
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func float(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func count(n int) string { return strconv.Itoa(n) }

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

// BuildTables converts a pipeline result into the full set of export tables,
// in the original report's file naming.
func BuildTables(res *pipeline.Result) []Table {
	tables := []Table{
		openRecordsTable(res),
		aggregateTable("open_summary_overall", "Geral", res.Overall, false, false),
		aggregateTable("open_summary_by_bank", "Por Banco", res.ByBank, true, false),
		aggregateTable("open_summary_by_month", "Por Mes", res.ByMonth, false, true),
		aggregateTable("open_summary_by_bank_month", "Por Banco e Mes", res.ByBankMonth, true, true),
		rankingTable("debtors_ranking_by_total_debt", "Ranking Divida", res.RankingByDebt),
		rankingTable("debtors_ranking_by_recurrence", "Ranking Reincidencia", rankingFromRecurrence(res)),
		recurrenceTable(res),
		recurrenceByMonthTable(res),
		changeTable("debt_change_month_over_month", "Mudancas", res.Changes),
		changeTable("top_worsened", "Top Pioras", res.TopWorsened),
		changeTable("top_improved", "Top Melhoras", res.TopImproved),
		qualityTable(res),
		findingsTable(res),
	}
	return tables
}

func openRecordsTable(res *pipeline.Result) Table {
	t := Table{
		Name:  "open_records",
		Sheet: "Boletos em Aberto",
		Header: []string{
			"banco", "mes_referencia", "pena_agua", "nome_pagador", "person_id",
			"status", "numero_nosso", "numero_seu", "data_vencimento", "valor",
			"duplicate_flags",
		},
	}
	for i := range res.Records {
		rec := &res.Records[i]
		if !rec.IsOpen() {
			continue
		}
		t.Rows = append(t.Rows, []string{
			rec.Bank, rec.ReferenceMonth, rec.WaterPenaltyID, rec.PayerName,
			rec.PersonID, rec.StatusNorm, rec.OurNumber, rec.YourNumber,
			date(rec.DueDate), money(rec.Amount),
			strings.Join(rec.DuplicateFlags, ";"),
		})
	}
	return t
}

func aggregateTable(name, sheet string, rows []metrics.AggregateRow, withBank, withMonth bool) Table {
	t := Table{Name: name, Sheet: sheet}
	if withBank {
		t.Header = append(t.Header, "banco")
	}
	if withMonth {
		t.Header = append(t.Header, "mes_referencia")
	}
	t.Header = append(t.Header,
		"qtd_boletos", "qtd_devedores", "soma_divida", "valor_medio",
		"valor_mediana", "valor_desvio_padrao", "valor_p25", "valor_p75",
		"valor_p90", "valor_p95", "valor_min", "valor_max")
	for _, row := range rows {
		var cells []string
		if withBank {
			cells = append(cells, row.Bank)
		}
		if withMonth {
			cells = append(cells, row.Month)
		}
		cells = append(cells,
			count(row.BillCount), count(row.DebtorCount), money(row.Sum),
			float(row.Mean), float(row.Median), float(row.StdDev),
			float(row.P25), float(row.P75), float(row.P90), float(row.P95),
			money(row.Min), money(row.Max))
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func rankingTable(name, sheet string, ranks []metrics.DebtorRank) Table {
	t := Table{
		Name:   name,
		Sheet:  sheet,
		Header: []string{"rank", "person_id", "pena_agua", "nome", "divida_total", "qtd_boletos", "status_mais_comum"},
	}
	for _, r := range ranks {
		t.Rows = append(t.Rows, []string{
			count(r.Rank), r.PersonID, r.WaterPenaltyID, r.PayerName,
			money(r.TotalDebt), count(r.BillCount), r.CommonStatus,
		})
	}
	return t
}

func rankingFromRecurrence(res *pipeline.Result) []metrics.DebtorRank {
	ranks := make([]metrics.DebtorRank, 0, len(res.TopRecurrent))
	for i, rec := range res.TopRecurrent {
		ranks = append(ranks, metrics.DebtorRank{
			Rank:           i + 1,
			PersonID:       rec.PersonID,
			WaterPenaltyID: rec.WaterPenaltyID,
			PayerName:      rec.PayerName,
			TotalDebt:      rec.TotalOpen,
			BillCount:      rec.BillCount,
		})
	}
	return ranks
}

func recurrenceTable(res *pipeline.Result) Table {
	t := Table{
		Name:  "debtors_recurrence_detail",
		Sheet: "Reincidencia",
		Header: []string{
			"person_id", "pena_agua", "nome", "meses_apareceu", "meses_lista",
			"qtd_boletos_open", "soma_open", "media_open", "reincidente",
		},
	}
	for _, r := range res.Recurrence {
		t.Rows = append(t.Rows, []string{
			r.PersonID, r.WaterPenaltyID, r.PayerName, count(r.MonthCount),
			strings.Join(r.Months, ", "), count(r.BillCount), money(r.TotalOpen),
			float(r.MeanOpen), strconv.FormatBool(r.Reincident),
		})
	}
	return t
}

func recurrenceByMonthTable(res *pipeline.Result) Table {
	t := Table{
		Name:  "recurrence_by_month",
		Sheet: "Reincidencia por Mes",
		Header: []string{
			"mes_referencia", "qtd_devedores_total", "qtd_devedores_novos",
			"qtd_devedores_reincidentes", "pct_reincidentes",
		},
	}
	for _, m := range res.RecurrenceByMonth {
		t.Rows = append(t.Rows, []string{
			m.Month, count(m.TotalDebtors), count(m.NewDebtors),
			count(m.RepeatDebtors), float(m.PctRepeat),
		})
	}
	return t
}

func changeTable(name, sheet string, changes []recurrence.Change) Table {
	t := Table{
		Name:  name,
		Sheet: sheet,
		Header: []string{
			"person_id", "pena_agua", "nome", "mes_anterior", "mes_atual",
			"divida_mes_anterior", "divida_mes_atual", "delta", "pct_delta",
		},
	}
	for _, c := range changes {
		t.Rows = append(t.Rows, []string{
			c.PersonID, c.WaterPenaltyID, c.PayerName, c.PrevMonth, c.Month,
			money(c.PrevAmount), money(c.Amount), money(c.Delta), float(c.PctDelta),
		})
	}
	return t
}

func qualityTable(res *pipeline.Result) Table {
	q := res.Quality
	return Table{
		Name:   "data_quality_report",
		Sheet:  "Qualidade",
		Header: []string{"metrica", "valor"},
		Rows: [][]string{
			{"total_linhas", count(q.TotalRows)},
			{"linhas_invalidas", count(q.InvalidRows)},
			{"linhas_valor_invalido", count(q.InvalidAmountRows)},
			{"linhas_data_invalida", count(q.InvalidDateRows)},
			{"pct_valor_invalido", float(q.PctInvalidAmount)},
			{"pct_data_invalida", float(q.PctInvalidDate)},
			{"linhas_status_desconhecido", count(q.UnknownStatusRows)},
			{"grupos_dup_banco_numero_nosso", count(q.GroupsByOurNumber)},
			{"grupos_dup_banco_numero_seu", count(q.GroupsByYourNumber)},
			{"total_apontamentos", count(q.FindingCount)},
		},
	}
}

func findingsTable(res *pipeline.Result) Table {
	t := Table{
		Name:   "quality_findings",
		Sheet:  "Apontamentos",
		Header: []string{"arquivo", "linha", "campo", "problema", "severidade"},
	}
	for _, f := range res.Findings {
		t.Rows = append(t.Rows, []string{
			f.SourceFile, count(f.Line), f.Field, f.Problem, string(f.Severity),
		})
	}
	return t
}
