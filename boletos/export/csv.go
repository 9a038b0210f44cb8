package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// utf8BOM makes the files open cleanly in Excel with accented names intact,
// matching the utf-8-sig convention of the spreadsheets these reports feed.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSVs writes one <name>.csv per table into outputDir.
func WriteCSVs(tables []Table, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, t := range tables {
		path := filepath.Join(outputDir, t.Name+".csv")
		if err := writeCSV(t, path); err != nil {
			return err
		}
		log.Printf("[Export] CSV written: %s (%d rows)", path, len(t.Rows))
	}
	return nil
}

func writeCSV(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
