// Package report renders the single-file HTML delinquency report from the
// pipeline result. Presentation only; all figures arrive precomputed.
package report

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/pipeline"
)

// FormatCurrency renders a value as Brazilian currency: R$ 1.161,41.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func formatFloatCurrency(v float64) string {
	return FormatCurrency(decimal.NewFromFloat(v).Round(2))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

var funcMap = template.FuncMap{
	"currency":  FormatCurrency,
	"fcurrency": formatFloatCurrency,
	"percent":   formatPercent,
	"joinList":  func(items []string) string { return strings.Join(items, ", ") },
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	},
}

type reportData struct {
	GeneratedAt string
	Charts      []string
	Result      *pipeline.Result
}

// Generate writes the HTML report into outputDir, referencing any chart
// images found under chartsDir (relative paths inside the report).
func Generate(res *pipeline.Result, outputDir, fileName, chartsDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	var charts []string
	if chartsDir != "" {
		entries, err := os.ReadDir(chartsDir)
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
					charts = append(charts, filepath.Join(filepath.Base(chartsDir), e.Name()))
				}
			}
		}
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	path := filepath.Join(outputDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	data := reportData{
		GeneratedAt: time.Now().Format("02/01/2006 15:04"),
		Charts:      charts,
		Result:      res,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	log.Printf("[Report] HTML report written: %s", path)
	return nil
}
