package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"BoletoReport/boletos/cleaning"
	"BoletoReport/boletos/status"
)

func rawRow(fields map[string]string) cleaning.RawRow {
	return cleaning.RawRow{SourceFile: "test.csv", Line: 2, Fields: fields}
}

func TestRunScenario(t *testing.T) {
	t.Parallel()

	rows := []cleaning.RawRow{
		rawRow(map[string]string{
			"banco": "B1", "status": "PAGO NO DIA", "valor": "500,00",
			"mes_referencia": "2025-09", "nome_pagador": "436 JOAO",
		}),
		rawRow(map[string]string{
			"banco": "B1", "status": "VENCIDO", "valor": "1.161,41",
			"mes_referencia": "2025-10", "nome_pagador": "436 JOAO",
		}),
	}

	res := Run(rows, Config{TopN: 10})

	require.Equal(t, 2, res.TotalRows)
	require.Equal(t, 2, res.ValidRows)
	require.Equal(t, 1, res.OpenRows)
	require.NotEmpty(t, res.RunID)

	// The PAID record is excluded from OPEN aggregates.
	require.Len(t, res.Overall, 1)
	require.Equal(t, 1, res.Overall[0].BillCount)
	require.Equal(t, "1161.41", res.Overall[0].Sum.String())

	// One OPEN month: recurrence count 1 for 436|JOAO.
	require.Len(t, res.Recurrence, 1)
	require.Equal(t, "436|JOAO", res.Recurrence[0].PersonID)
	require.Equal(t, 1, res.Recurrence[0].MonthCount)
	require.False(t, res.Recurrence[0].Reincident)
}

func TestRunDuplicatesStayInAggregates(t *testing.T) {
	t.Parallel()

	rows := []cleaning.RawRow{
		rawRow(map[string]string{
			"banco": "B1", "status": "VENCIDO", "valor": "100,00",
			"mes_referencia": "2025-10", "nome_pagador": "1 A", "numero_nosso": "111",
		}),
		rawRow(map[string]string{
			"banco": "B1", "status": "VENCIDO", "valor": "250,00",
			"mes_referencia": "2025-10", "nome_pagador": "2 B", "numero_nosso": "111",
		}),
	}

	res := Run(rows, Config{TopN: 10})

	require.Equal(t, 2, res.Quality.TotalRows)
	require.Equal(t, 1, res.Quality.GroupsByOurNumber)
	require.True(t, res.Records[0].HasDuplicateFlag("bank_our_number"))
	require.True(t, res.Records[1].HasDuplicateFlag("bank_our_number"))

	// Both flagged records still count toward the OPEN summary.
	require.Equal(t, 2, res.Overall[0].BillCount)
	require.Equal(t, "350", res.Overall[0].Sum.String())
}

func TestRunUnknownStatusReported(t *testing.T) {
	t.Parallel()

	rows := []cleaning.RawRow{
		rawRow(map[string]string{
			"banco": "B1", "status": "QUASE PAGO", "valor": "10,00",
			"mes_referencia": "2025-10", "nome_pagador": "1 A",
		}),
	}

	res := Run(rows, Config{TopN: 10})

	require.Equal(t, status.CategoryUnknown, res.Records[0].StatusClass)
	require.Equal(t, 0, res.OpenRows)
	require.Equal(t, []string{"QUASE PAGO"}, res.UnknownStatuses)
	require.Len(t, res.Findings, 1)
	require.Equal(t, 1, res.Quality.UnknownStatusRows)
}
