// Package cleaning normalizes raw boleto rows into canonical records and
// accumulates field-level data-quality findings along the way.
package cleaning

import (
	"fmt"
	"strings"

	"BoletoReport/boletos/status"
	"BoletoReport/boletos/utils"
)

// Column names expected in the input, after header lower-casing.
const (
	ColBank           = "banco"
	ColPayerName      = "nome_pagador"
	ColStatus         = "status"
	ColYourNumber     = "numero_seu"
	ColOurNumber      = "numero_nosso"
	ColDueDate        = "data_vencimento"
	ColDDA            = "dda"
	ColAmount         = "valor"
	ColReferenceMonth = "mes_referencia"
	ColWaterPenaltyID = "pena_agua"
)

// RequiredColumns must be present in every input source. A source missing one
// of them entirely is a structural failure, not a row-level finding.
var RequiredColumns = []string{
	ColBank,
	ColPayerName,
	ColStatus,
	ColYourNumber,
	ColOurNumber,
	ColDueDate,
	ColDDA,
	ColAmount,
}

// Cleaner turns raw rows into normalized records. It is the owner of the
// cleaning-stage findings; every Clean call may append to them.
type Cleaner struct {
	classifier *status.Classifier
	findings   []Finding
}

func NewCleaner(classifier *status.Classifier) *Cleaner {
	return &Cleaner{classifier: classifier}
}

// Findings returns the findings accumulated so far, in row order.
func (c *Cleaner) Findings() []Finding {
	return c.findings
}

func (c *Cleaner) addFinding(row RawRow, field, problem string, sev Severity) {
	c.findings = append(c.findings, Finding{
		SourceFile: row.SourceFile,
		Line:       row.Line,
		Field:      field,
		Problem:    problem,
		Severity:   sev,
	})
}

// CleanAll runs Clean over a row slice, preserving order.
func (c *Cleaner) CleanAll(rows []RawRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, c.Clean(row))
	}
	return records
}

// Clean produces a best-effort normalized record for one raw row. Rows are
// never dropped: a row with missing or unparsable fields comes back with
// IsValid=false and one finding per problem, so every exclusion stays
// traceable in the quality report.
func (c *Cleaner) Clean(row RawRow) Record {
	rec := Record{
		SourceFile: row.SourceFile,
		Line:       row.Line,
		IsValid:    true,
	}

	// Required text fields first. A miss invalidates the record but cleaning
	// continues so the quality report still sees everything else.
	rec.Bank = utils.NormalizeText(row.Get(ColBank))
	if rec.Bank == "" {
		rec.IsValid = false
		c.addFinding(row, ColBank, "required field is empty", SeverityError)
	}
	rec.PayerName = strings.TrimSpace(row.Get(ColPayerName))
	if rec.PayerName == "" {
		rec.IsValid = false
		c.addFinding(row, ColPayerName, "required field is empty", SeverityError)
	}
	rec.StatusRaw = strings.TrimSpace(row.Get(ColStatus))
	if rec.StatusRaw == "" {
		rec.IsValid = false
		c.addFinding(row, ColStatus, "required field is empty", SeverityError)
	}

	// Water-penalty id: the dedicated column wins; otherwise peel the leading
	// digit run off the payer name and keep the remainder as the name.
	rec.WaterPenaltyID = strings.TrimSpace(row.Get(ColWaterPenaltyID))
	if rec.WaterPenaltyID == "" && rec.PayerName != "" {
		if id, remainder, ok := utils.ExtractLeadingID(rec.PayerName); ok {
			rec.WaterPenaltyID = id
			rec.PayerName = remainder
		}
	}

	// Due date, then the reference month it anchors.
	if raw := strings.TrimSpace(row.Get(ColDueDate)); raw != "" {
		if due, ok := utils.ParseDate(raw); ok {
			rec.DueDate = &due
		} else {
			c.addFinding(row, ColDueDate, fmt.Sprintf("unparsable date %q", raw), SeverityWarning)
		}
	} else {
		c.addFinding(row, ColDueDate, "empty due date", SeverityWarning)
	}

	rec.ReferenceMonth = strings.TrimSpace(row.Get(ColReferenceMonth))
	if rec.ReferenceMonth == "" && rec.DueDate != nil {
		rec.ReferenceMonth = utils.DeriveMonth(*rec.DueDate)
	}
	if rec.ReferenceMonth == "" {
		// No temporal anchor at all: the record cannot be placed in a month.
		rec.IsValid = false
		c.addFinding(row, ColReferenceMonth, "no reference month and no parsable due date", SeverityError)
	}

	// Amount. An otherwise-valid record without an amount still cannot feed
	// monetary aggregates, so it is invalid.
	rawAmount := strings.TrimSpace(row.Get(ColAmount))
	if amount, ok := utils.ParseAmount(rawAmount); ok {
		rec.Amount = amount
		rec.AmountValid = true
	} else {
		rec.IsValid = false
		if rawAmount == "" {
			c.addFinding(row, ColAmount, "required field is empty", SeverityError)
		} else {
			c.addFinding(row, ColAmount, fmt.Sprintf("unparsable amount %q", rawAmount), SeverityError)
		}
	}

	// DDA flag is optional: absence is fine, garbage is a finding.
	if raw := strings.TrimSpace(row.Get(ColDDA)); raw != "" {
		if flag, ok := utils.ParseDDAFlag(raw); ok {
			rec.DDAFlag = &flag
		} else {
			c.addFinding(row, ColDDA, fmt.Sprintf("expected S or N, got %q", raw), SeverityWarning)
		}
	}

	rec.OurNumber = strings.TrimSpace(row.Get(ColOurNumber))
	rec.YourNumber = strings.TrimSpace(row.Get(ColYourNumber))

	rec.StatusNorm, rec.StatusClass = c.classifier.Classify(rec.StatusRaw)
	if rec.StatusClass == status.CategoryUnknown && rec.StatusRaw != "" {
		c.addFinding(row, ColStatus, fmt.Sprintf("unclassified status %q", rec.StatusNorm), SeverityWarning)
	}

	rec.PayerNameNorm = utils.NormalizeName(rec.PayerName)
	rec.PersonID = utils.PersonID(rec.WaterPenaltyID, rec.PayerName)
	return rec
}
