package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"BoletoReport/boletos/charts"
	"BoletoReport/boletos/export"
	"BoletoReport/boletos/ingest"
	"BoletoReport/boletos/pipeline"
	"BoletoReport/boletos/report"
	"BoletoReport/internal/config"
	"BoletoReport/internal/logger"
)

func main() {
	inputPath := flag.String("input", "", "CSV/XLSX/XLS file or directory with input files (required)")
	outputPath := flag.String("output", "", "output directory, created if missing (required)")
	formats := flag.String("formats", config.DefaultFormats, "comma-separated output formats: html,csv,xlsx")
	topN := flag.Int("top", config.DefaultTopN, "number of debtors in the rankings")
	encoding := flag.String("encoding", config.DefaultEncoding, "input text encoding (utf-8 or latin-1)")
	paidStatus := flag.String("paid-status", "", "comma-separated statuses treated as PAID (overrides defaults)")
	openStatus := flag.String("open-status", "", "comma-separated statuses treated as OPEN (overrides defaults)")
	configPath := flag.String("config", "", "optional YAML run configuration file")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load .env for local runs; absence is fine.
	_ = godotenv.Load()

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = config.DefaultLogFolder
	}
	logService := logger.NewLoggerService(logDir, config.DefaultLogMaxMB)
	if err := logService.Start(); err != nil {
		log.Fatal("failed to start logger:", err)
	}
	defer logService.Stop()

	cfg := pipeline.Config{
		PaidStatuses: config.SplitList(*paidStatus),
		OpenStatuses: config.SplitList(*openStatus),
		TopN:         *topN,
	}
	enc := *encoding
	formatList := config.SplitList(strings.ToLower(*formats))

	if *configPath != "" {
		fileCfg, err := config.LoadRunConfig(*configPath)
		if err != nil {
			log.Fatal("failed to load run config:", err)
		}
		if cfg.PaidStatuses == nil {
			cfg.PaidStatuses = fileCfg.PaidStatuses
		}
		if cfg.OpenStatuses == nil {
			cfg.OpenStatuses = fileCfg.OpenStatuses
		}
		if *topN == config.DefaultTopN && fileCfg.TopN > 0 {
			cfg.TopN = fileCfg.TopN
		}
		if enc == config.DefaultEncoding && fileCfg.Encoding != "" {
			enc = fileCfg.Encoding
		}
		if *formats == config.DefaultFormats && len(fileCfg.Formats) > 0 {
			formatList = fileCfg.Formats
		}
	}

	wantHTML, wantCSV, wantXLSX := false, false, false
	for _, f := range formatList {
		switch strings.TrimSpace(strings.ToLower(f)) {
		case "html":
			wantHTML = true
		case "csv":
			wantCSV = true
		case "xlsx":
			wantXLSX = true
		}
	}
	if !wantHTML && !wantCSV && !wantXLSX {
		log.Println("no valid output format requested, defaulting to html,csv")
		wantHTML, wantCSV = true, true
	}

	outputDir, err := nextReportDir(*outputPath)
	if err != nil {
		log.Fatal("failed to prepare output directory:", err)
	}
	log.Println("output directory:", outputDir)

	logService.LogStage("Loading input files")
	rows, err := ingest.LoadAll(*inputPath, enc)
	if err != nil {
		// Structural failure: the batch cannot be trusted.
		log.Fatal("input batch failed:", err)
	}
	log.Printf("loaded %d raw rows", len(rows))

	logService.LogStage("Running delinquency engine")
	res := pipeline.Run(rows, cfg)

	chartsDir := ""
	if wantHTML {
		logService.LogStage("Rendering charts")
		chartsDir = filepath.Join(outputDir, config.ChartsDirName)
		if err := charts.GenerateAll(res, chartsDir); err != nil {
			log.Fatal("chart rendering failed:", err)
		}
	}

	if wantCSV || wantXLSX {
		logService.LogStage("Exporting summary tables")
		tables := export.BuildTables(res)
		if wantCSV {
			if err := export.WriteCSVs(tables, outputDir); err != nil {
				log.Fatal("csv export failed:", err)
			}
		}
		if wantXLSX {
			if err := export.WriteWorkbook(tables, filepath.Join(outputDir, config.WorkbookName)); err != nil {
				log.Fatal("xlsx export failed:", err)
			}
		}
	}

	if wantHTML {
		logService.LogStage("Generating HTML report")
		if err := report.Generate(res, outputDir, config.HTMLReportName, chartsDir); err != nil {
			log.Fatal("report generation failed:", err)
		}
	}

	logService.LogStage("Done")
	log.Printf("unique debtors: %d, open bills: %d, total open debt: %s",
		res.Overview.UniqueDebtors, res.Overview.OpenBills, report.FormatCurrency(res.Overview.TotalOpenDebt))
	if len(res.UnknownStatuses) > 0 {
		log.Printf("warning: %d unclassified statuses found, review the report", len(res.UnknownStatuses))
	}
	if res.Quality.InvalidRows > 0 {
		log.Printf("warning: %d invalid rows excluded from aggregates, see the quality report", res.Quality.InvalidRows)
	}
}

// nextReportDir creates and returns <base>/relatorio_N with the next free
// sequence number, so successive runs never overwrite each other.
func nextReportDir(base string) (string, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", err
	}
	next := 1
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), config.ReportDirPrefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(e.Name(), config.ReportDirPrefix)); err == nil && n >= next {
			next = n + 1
		}
	}
	dir := filepath.Join(base, fmt.Sprintf("%s%d", config.ReportDirPrefix, next))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
