package config

const (
	DefaultTopN     = 10
	DefaultEncoding = "utf-8"
	DefaultFormats  = "html,csv"

	// Output file layout
	ReportDirPrefix = "relatorio_"
	ChartsDirName   = "charts"
	HTMLReportName  = "relatorio_inadimplencia.html"
	WorkbookName    = "resumos_inadimplencia.xlsx"

	// Logger defaults
	DefaultLogFolder = "./logs"
	DefaultLogMaxMB  = 10
)
