// Package excel imports vocabulary from Excel or CSV files into the word store.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabbot/pkg/models"
)

// recordStore is the subset of the word repository the importer needs.
type recordStore interface {
	GetByText(text string) (*models.WordRecord, error)
	Create(rec *models.WordRecord) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	WordColumn          string // Column with the word
	DefinitionColumn    string // Column with the definition
	PronunciationColumn string // Column with the pronunciation
	AddReasonColumn     string // Column with the add reason
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		DefinitionColumn:    "B",
		PronunciationColumn: "C",
		AddReasonColumn:     "D",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer reads word lists into the store.
type Importer struct {
	store recordStore
}

// NewImporter creates an importer writing through the given store.
func NewImporter(store recordStore) *Importer {
	return &Importer{store: store}
}

// ImportWords imports words from an Excel or CSV file
func (im *Importer) ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(config)
	}
	return im.importFromExcel(config)
}

func (im *Importer) importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", config.SheetName, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		im.importRow(result, rowNum, rowValues(row, config))
	}
	return result, nil
}

func (im *Importer) importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		im.importRow(result, rowNum, rowValues(row, config))
	}
	return result, nil
}

// rowFields carries one parsed input row.
type rowFields struct {
	word          string
	definition    string
	pronunciation string
	addReason     string
}

// rowValues picks the configured columns out of a raw row.
func rowValues(row []string, config ImportConfig) rowFields {
	return rowFields{
		word:          cellValue(row, config.WordColumn),
		definition:    cellValue(row, config.DefinitionColumn),
		pronunciation: cellValue(row, config.PronunciationColumn),
		addReason:     cellValue(row, config.AddReasonColumn),
	}
}

// importRow validates one row and writes the record, counting the outcome.
func (im *Importer) importRow(result *ImportResult, rowNum int, fields rowFields) {
	result.TotalProcessed++

	word := strings.TrimSpace(fields.word)
	definition := strings.TrimSpace(fields.definition)
	if word == "" || definition == "" {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing word or definition", rowNum))
		return
	}

	reason := models.AddReason(strings.TrimSpace(fields.addReason))
	if reason == "" {
		reason = models.AddReasonLookupTranslation
	}
	if !reason.IsValid() {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown add reason %q", rowNum, fields.addReason))
		return
	}

	if _, err := im.store.GetByText(word); err == nil {
		// Already in the deck
		result.Skipped++
		return
	}

	rec := models.NewWordRecord(uuid.NewString(), word, definition,
		strings.TrimSpace(fields.pronunciation), reason, time.Now())
	if err := im.store.Create(&rec); err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	result.Created++
}

// cellValue returns the value of a column letter in a row, or "" when the row
// is too short.
func cellValue(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columnIndex converts a column letter ("A", "B", ... "AA") to a zero-based index.
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		idx = idx*26 + int(ch-'A') + 1
	}
	return idx - 1
}
