// Package ingest discovers input files and turns them into raw rows. It owns
// all structural validation: an unreadable file, a file without data rows or
// a file missing a required column fails the batch, while everything
// row-level is left for the cleaning stage to absorb.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"BoletoReport/boletos/cleaning"
)

// SourceError is a structural failure of one input source. It is fatal for
// the batch, unlike row-level findings.
type SourceError struct {
	File   string
	Reason string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %s", e.File, e.Reason)
}

var sentinelEmpty = map[string]struct{}{
	"NULL": {}, "null": {}, "None": {}, "N/A": {}, "n/a": {},
}

const utf8BOM = "\xEF\xBB\xBF"

// DiscoverInputs resolves an input path to the ordered list of files to
// load: the file itself, or every .csv/.xlsx/.xls in a directory, sorted.
func DiscoverInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &SourceError{File: path, Reason: err.Error()}
	}
	if !info.IsDir() {
		if !supportedExt(path) {
			return nil, &SourceError{File: path, Reason: "unsupported file type"}
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &SourceError{File: path, Reason: err.Error()}
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		if supportedExt(full) {
			files = append(files, full)
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, &SourceError{File: path, Reason: "no csv, xlsx or xls files found"}
	}
	return files, nil
}

func supportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// LoadAll reads every discovered file under inputPath and concatenates the
// raw rows in file order.
func LoadAll(inputPath, encoding string) ([]cleaning.RawRow, error) {
	files, err := DiscoverInputs(inputPath)
	if err != nil {
		return nil, err
	}
	var rows []cleaning.RawRow
	for _, file := range files {
		fileRows, err := ReadSource(file, encoding)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// ReadSource parses one input file into raw rows. The first row is the
// header; every required column must be present in it.
func ReadSource(path, encoding string) ([]cleaning.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{File: path, Reason: err.Error()}
	}

	var table [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		table, err = readXLSX(data)
	case ".xls":
		table, err = readXLS(path)
	default:
		table, err = readCSV(data, encoding)
	}
	if err != nil {
		return nil, &SourceError{File: path, Reason: err.Error()}
	}
	if len(table) < 2 {
		return nil, &SourceError{File: path, Reason: "no data rows"}
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.ToLower(normalizeCell(h))
	}
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	for _, required := range cleaning.RequiredColumns {
		if _, ok := present[required]; !ok {
			return nil, &SourceError{File: path, Reason: "missing required column " + required}
		}
	}

	rows := make([]cleaning.RawRow, 0, len(table)-1)
	for i, raw := range table[1:] {
		fields := make(map[string]string, len(header))
		for j, col := range header {
			if col == "" || j >= len(raw) {
				continue
			}
			fields[col] = normalizeCell(raw[j])
		}
		rows = append(rows, cleaning.RawRow{
			SourceFile: filepath.Base(path),
			Line:       i + 2, // 1-based, after the header
			Fields:     fields,
		})
	}
	return rows, nil
}

// normalizeCell trims, removes non-breaking spaces, collapses whitespace and
// maps the sentinel empty markers to the empty string.
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
	if _, ok := sentinelEmpty[s]; ok {
		return ""
	}
	return s
}

func readCSV(data []byte, encoding string) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	var reader io.Reader = bytes.NewReader(data)
	switch strings.ToLower(encoding) {
	case "latin-1", "latin1", "iso-8859-1", "windows-1252", "cp1252":
		reader = transform.NewReader(reader, charmap.Windows1252.NewDecoder())
	default:
		if !utf8.Valid(data) {
			// Legacy bank exports are commonly Windows-1252.
			reader = transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
		}
	}

	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func readXLSX(data []byte) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer xl.Close()
	sheetName := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func readXLS(path string) ([][]string, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("xls sheet: %w", err)
	}
	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var vals []string
		for _, col := range xlsRow.GetCols() {
			vals = append(vals, col.GetString())
		}
		rows = append(rows, vals)
	}
	return rows, nil
}
