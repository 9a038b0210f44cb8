package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const csvHeader = "banco,nome_pagador,status,numero_seu,numero_nosso,data_vencimento,dda,valor\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadSourceCSV(t *testing.T) {
	t.Parallel()

	data := csvHeader +
		"B1,436 JOAO,VENCIDO,77,111,2025-10-15,S,\"1.161,41\"\n" +
		"B1,437 MARIA,PAGO,78,112,15/09/2025,N,NULL\n"
	path := writeFile(t, "boletos.csv", []byte(data))

	rows, err := ReadSource(path, "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "boletos.csv", rows[0].SourceFile)
	require.Equal(t, 2, rows[0].Line)
	require.Equal(t, "B1", rows[0].Get("banco"))
	require.Equal(t, "1.161,41", rows[0].Get("valor"))
	require.Equal(t, "", rows[1].Get("valor"), "sentinel NULL maps to empty")
}

func TestReadSourceCSVWithBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte(utf8BOM), []byte(csvHeader+"B1,1 A,VENCIDO,7,1,2025-10-01,S,10\n")...)
	path := writeFile(t, "bom.csv", data)

	rows, err := ReadSource(path, "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "B1", rows[0].Get("banco"), "BOM must not stick to the first header")
}

func TestReadSourceLatin1Fallback(t *testing.T) {
	t.Parallel()

	// "JOÃO" in Windows-1252: 0xC3 is not valid UTF-8 on its own.
	row := append([]byte("B1,1 JO"), 0xC3)
	row = append(row, []byte("O,VENCIDO,7,1,2025-10-01,S,10\n")...)
	data := append([]byte(csvHeader), row...)
	path := writeFile(t, "legacy.csv", data)

	rows, err := ReadSource(path, "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "1 JOÃO", rows[0].Get("nome_pagador"))
}

func TestReadSourceMissingColumnIsStructural(t *testing.T) {
	t.Parallel()

	data := "banco,nome_pagador,status\nB1,1 A,VENCIDO\n"
	path := writeFile(t, "short.csv", []byte(data))

	_, err := ReadSource(path, "utf-8")
	require.Error(t, err)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	require.Contains(t, srcErr.Reason, "missing required column")
}

func TestReadSourceNoDataRows(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "empty.csv", []byte(csvHeader))

	_, err := ReadSource(path, "utf-8")
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	require.Equal(t, "no data rows", srcErr.Reason)
}

func TestReadSourceXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"banco", "nome_pagador", "status", "numero_seu", "numero_nosso", "data_vencimento", "dda", "valor"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"B1", "436 JOAO", "VENCIDO", "77", "111", "2025-10-15", "S", "1.161,41"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	path := filepath.Join(t.TempDir(), "boletos.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadSource(path, "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "436 JOAO", rows[0].Get("nome_pagador"))
	require.Equal(t, "1.161,41", rows[0].Get("valor"))
}

func TestDiscoverInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "x.txt", "c.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := DiscoverInputs(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	require.Equal(t, "a.csv", filepath.Base(files[0]))
	require.Equal(t, "b.csv", filepath.Base(files[1]))
	require.Equal(t, "c.xlsx", filepath.Base(files[2]))
}

func TestDiscoverInputsEmptyDir(t *testing.T) {
	t.Parallel()

	_, err := DiscoverInputs(t.TempDir())
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
}

func TestLoadAllConcatenates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte(csvHeader+"B1,1 A,VENCIDO,7,1,2025-10-01,S,10\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"),
		[]byte(csvHeader+"B2,2 B,PAGO,8,2,2025-10-02,N,20\n"), 0644))

	rows, err := LoadAll(dir, "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "a.csv", rows[0].SourceFile)
	require.Equal(t, "b.csv", rows[1].SourceFile)
}
