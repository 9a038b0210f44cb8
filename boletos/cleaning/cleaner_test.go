package cleaning

import (
	"testing"

	"github.com/stretchr/testify/require"

	"BoletoReport/boletos/status"
)

func row(fields map[string]string) RawRow {
	return RawRow{SourceFile: "test.csv", Line: 2, Fields: fields}
}

func newCleaner() *Cleaner {
	return NewCleaner(status.NewClassifier(nil, nil))
}

func TestCleanValidRow(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "b1",
		ColPayerName: "436 João da Silva",
		ColStatus:    "VENCIDO",
		ColDueDate:   "2025-10-15",
		ColAmount:    "1.161,41",
		ColDDA:       "S",
		ColOurNumber: "111",
	}))

	require.True(t, rec.IsValid)
	require.Equal(t, "B1", rec.Bank)
	require.Equal(t, "436", rec.WaterPenaltyID)
	require.Equal(t, "João da Silva", rec.PayerName)
	require.Equal(t, "JOAO DA SILVA", rec.PayerNameNorm)
	require.Equal(t, "436|JOAO DA SILVA", rec.PersonID)
	require.Equal(t, status.CategoryOpen, rec.StatusClass)
	require.Equal(t, "2025-10", rec.ReferenceMonth)
	require.NotNil(t, rec.DueDate)
	require.NotNil(t, rec.DDAFlag)
	require.True(t, *rec.DDAFlag)
	require.True(t, rec.AmountValid)
	require.Equal(t, "1161.41", rec.Amount.String())
	require.Empty(t, c.Findings())
}

func TestCleanPenaltyColumnWins(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:           "B1",
		ColPayerName:      "436 JOAO",
		ColStatus:         "VENCIDO",
		ColWaterPenaltyID: "900",
		ColReferenceMonth: "2025-09",
		ColAmount:         "10,00",
	}))

	// With an explicit pena_agua column the name keeps its digits.
	require.Equal(t, "900", rec.WaterPenaltyID)
	require.Equal(t, "436 JOAO", rec.PayerName)
	require.Equal(t, "900|436 JOAO", rec.PersonID)
}

func TestCleanMissingRequiredFields(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColPayerName: "436 JOAO",
		ColStatus:    "VENCIDO",
		ColDueDate:   "2025-10-01",
		ColAmount:    "5,00",
	}))

	// Missing bank invalidates but the record is still produced.
	require.False(t, rec.IsValid)
	require.Equal(t, "436|JOAO", rec.PersonID)

	var fields []string
	for _, f := range c.Findings() {
		fields = append(fields, f.Field)
	}
	require.Contains(t, fields, ColBank)
}

func TestCleanNoTemporalAnchor(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "B1",
		ColPayerName: "436 JOAO",
		ColStatus:    "VENCIDO",
		ColDueDate:   "not a date",
		ColAmount:    "5,00",
	}))

	require.False(t, rec.IsValid)
	require.Nil(t, rec.DueDate)
	require.Empty(t, rec.ReferenceMonth)
}

func TestCleanMonthDerivedFromDueDate(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "B1",
		ColPayerName: "1 A",
		ColStatus:    "VENCIDO",
		ColDueDate:   "15/10/2025",
		ColAmount:    "5,00",
	}))
	require.Equal(t, "2025-10", rec.ReferenceMonth)

	// An explicit month column wins over the derived one.
	rec = c.Clean(row(map[string]string{
		ColBank:           "B1",
		ColPayerName:      "1 A",
		ColStatus:         "VENCIDO",
		ColDueDate:        "15/10/2025",
		ColReferenceMonth: "2025-09",
		ColAmount:         "5,00",
	}))
	require.Equal(t, "2025-09", rec.ReferenceMonth)
}

func TestCleanUnparsableAmountInvalidates(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "B1",
		ColPayerName: "1 A",
		ColStatus:    "VENCIDO",
		ColDueDate:   "2025-10-01",
		ColAmount:    "N/A value",
	}))

	require.False(t, rec.IsValid)
	require.False(t, rec.AmountValid)
	require.Len(t, c.Findings(), 1)
	require.Equal(t, ColAmount, c.Findings()[0].Field)
	require.Equal(t, SeverityError, c.Findings()[0].Severity)
}

func TestCleanBadDDAFlagIsWarningOnly(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "B1",
		ColPayerName: "1 A",
		ColStatus:    "VENCIDO",
		ColDueDate:   "2025-10-01",
		ColAmount:    "5,00",
		ColDDA:       "X",
	}))

	require.True(t, rec.IsValid)
	require.Nil(t, rec.DDAFlag)
	require.Len(t, c.Findings(), 1)
	require.Equal(t, SeverityWarning, c.Findings()[0].Severity)
}

func TestCleanUnknownStatusSingleFinding(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	rec := c.Clean(row(map[string]string{
		ColBank:      "B1",
		ColPayerName: "1 A",
		ColStatus:    "QUASE PAGO",
		ColDueDate:   "2025-10-01",
		ColAmount:    "5,00",
	}))

	require.True(t, rec.IsValid)
	require.Equal(t, status.CategoryUnknown, rec.StatusClass)
	require.False(t, rec.IsOpen())
	require.Len(t, c.Findings(), 1)
	require.Equal(t, ColStatus, c.Findings()[0].Field)
}

func TestCleanScenarioPaidAndOpen(t *testing.T) {
	t.Parallel()

	c := newCleaner()
	recs := c.CleanAll([]RawRow{
		row(map[string]string{
			ColBank: "B1", ColStatus: "PAGO NO DIA", ColAmount: "500,00",
			ColReferenceMonth: "2025-09", ColPayerName: "436 JOAO",
		}),
		row(map[string]string{
			ColBank: "B1", ColStatus: "VENCIDO", ColAmount: "1.161,41",
			ColReferenceMonth: "2025-10", ColPayerName: "436 JOAO",
		}),
	})

	require.Len(t, recs, 2)
	require.Equal(t, status.CategoryPaid, recs[0].StatusClass)
	require.False(t, recs[0].IsOpen())
	require.True(t, recs[1].IsOpen())
	require.Equal(t, "1161.41", recs[1].Amount.String())
	require.Equal(t, "436|JOAO", recs[0].PersonID)
	require.Equal(t, recs[0].PersonID, recs[1].PersonID)
}
