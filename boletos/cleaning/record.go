package cleaning

import (
	"time"

	"github.com/shopspring/decimal"

	"BoletoReport/boletos/status"
)

// RawRow is one row of input as delivered by the ingest layer: lower-cased
// column name to trimmed cell value. Missing columns are simply absent.
type RawRow struct {
	SourceFile string
	Line       int
	Fields     map[string]string
}

// Get returns the value of a column, empty when the column is absent.
func (r RawRow) Get(column string) string {
	return r.Fields[column]
}

// Record is the canonical, normalized unit of the system. Invalid records are
// kept (for quality reporting) but excluded from monetary aggregates.
type Record struct {
	SourceFile string `json:"source_file"`
	Line       int    `json:"line"`

	Bank           string `json:"bank"`
	ReferenceMonth string `json:"reference_month"`
	WaterPenaltyID string `json:"water_penalty_id"`
	PayerName      string `json:"payer_name"`
	PayerNameNorm  string `json:"payer_name_norm"`
	PersonID       string `json:"person_id"`

	StatusRaw   string          `json:"status_raw"`
	StatusNorm  string          `json:"status_norm"`
	StatusClass status.Category `json:"status_class"`

	OurNumber  string `json:"our_number"`
	YourNumber string `json:"your_number"`

	DueDate *time.Time `json:"due_date,omitempty"`
	DDAFlag *bool      `json:"dda_flag,omitempty"`

	Amount      decimal.Decimal `json:"amount"`
	AmountValid bool            `json:"amount_valid"`

	IsValid        bool     `json:"is_valid"`
	DuplicateFlags []string `json:"duplicate_flags,omitempty"`
}

// IsOpen reports whether the record counts toward delinquency aggregates.
func (r *Record) IsOpen() bool {
	return r.IsValid && r.StatusClass == status.CategoryOpen
}

// HasDuplicateFlag reports whether a duplicate rule already marked the record.
func (r *Record) HasDuplicateFlag(rule string) bool {
	for _, f := range r.DuplicateFlags {
		if f == rule {
			return true
		}
	}
	return false
}

type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Finding is one append-only data-quality entry. Findings never fail a run;
// they are the single channel for all non-fatal anomalies.
type Finding struct {
	SourceFile string   `json:"source_file"`
	Line       int      `json:"line"`
	Field      string   `json:"field"`
	Problem    string   `json:"problem"`
	Severity   Severity `json:"severity"`
}
