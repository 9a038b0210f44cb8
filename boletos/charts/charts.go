// Package charts rasterizes the summary tables into PNG images for the HTML
// report. Only precomputed pipeline output is plotted here.
package charts

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"BoletoReport/boletos/pipeline"
	"BoletoReport/boletos/status"
)

// File names produced under the charts directory.
const (
	FileDebtByMonth  = "open_debt_by_month.png"
	FileBillsByMonth = "open_bills_by_month.png"
	FileTopDebtors   = "top_debtors_by_total_debt.png"
	FileStatusCounts = "status_distribution.png"
)

// GenerateAll renders every chart into outputDir, skipping charts whose
// source table has too little data to plot.
func GenerateAll(res *pipeline.Result, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create charts dir: %w", err)
	}
	if err := debtByMonth(res, filepath.Join(outputDir, FileDebtByMonth)); err != nil {
		return err
	}
	if err := billsByMonth(res, filepath.Join(outputDir, FileBillsByMonth)); err != nil {
		return err
	}
	if err := topDebtors(res, filepath.Join(outputDir, FileTopDebtors)); err != nil {
		return err
	}
	return statusCounts(res, filepath.Join(outputDir, FileStatusCounts))
}

func renderPNG(c interface {
	Render(chart.RendererProvider, io.Writer) error
}, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", path, err)
	}
	defer f.Close()
	if err := c.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	log.Printf("[Charts] chart written: %s", path)
	return nil
}

func monthLine(title, yLabel string, months []string, values []float64, path string) error {
	if len(months) < 2 {
		log.Printf("[Charts] skipping %s: need at least two months", path)
		return nil
	}
	xs := make([]float64, len(months))
	ticks := make([]chart.Tick, len(months))
	for i, m := range months {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: m}
	}
	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{Ticks: ticks},
		YAxis:  chart.YAxis{Name: yLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: values},
		},
	}
	return renderPNG(&graph, path)
}

func debtByMonth(res *pipeline.Result, path string) error {
	months := make([]string, 0, len(res.ByMonth))
	values := make([]float64, 0, len(res.ByMonth))
	for _, row := range res.ByMonth {
		months = append(months, row.Month)
		values = append(values, row.Sum.InexactFloat64())
	}
	return monthLine("Divida em Aberto por Mes", "R$", months, values, path)
}

func billsByMonth(res *pipeline.Result, path string) error {
	months := make([]string, 0, len(res.ByMonth))
	values := make([]float64, 0, len(res.ByMonth))
	for _, row := range res.ByMonth {
		months = append(months, row.Month)
		values = append(values, float64(row.BillCount))
	}
	return monthLine("Boletos em Aberto por Mes", "Boletos", months, values, path)
}

func topDebtors(res *pipeline.Result, path string) error {
	if len(res.RankingByDebt) == 0 {
		log.Printf("[Charts] skipping %s: no open debtors", path)
		return nil
	}
	bars := make([]chart.Value, 0, len(res.RankingByDebt))
	for _, r := range res.RankingByDebt {
		label := r.WaterPenaltyID
		if label == "" {
			label = r.PayerName
		}
		bars = append(bars, chart.Value{Label: label, Value: r.TotalDebt.InexactFloat64()})
	}
	graph := chart.BarChart{
		Title:    "Top Devedores por Divida Total",
		Width:    1024,
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}
	return renderPNG(&graph, path)
}

func statusCounts(res *pipeline.Result, path string) error {
	counts := map[status.Category]int{}
	for i := range res.Records {
		counts[res.Records[i].StatusClass]++
	}
	bars := make([]chart.Value, 0, len(counts))
	for _, cat := range []status.Category{status.CategoryPaid, status.CategoryOpen, status.CategoryUnknown} {
		if counts[cat] == 0 {
			continue
		}
		bars = append(bars, chart.Value{Label: string(cat), Value: float64(counts[cat])})
	}
	if len(bars) == 0 {
		log.Printf("[Charts] skipping %s: no records", path)
		return nil
	}
	graph := chart.BarChart{
		Title:    "Distribuicao de Status",
		Width:    1024,
		Height:   512,
		BarWidth: 80,
		Bars:     bars,
	}
	return renderPNG(&graph, path)
}
