package curriculum

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tunamentor/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the question import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	IDColumn          string // Column with the question ID
	SubjectColumn     string // Column with the subject
	TopicColumn       string // Column with the topic
	TextColumn        string // Column with the question text
	OptionsColumns    string // First of four consecutive option columns
	AnswerColumn      string // Column with the correct answer
	ExplanationColumn string // Column with the explanation
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		IDColumn:          "A",
		SubjectColumn:     "B",
		TopicColumn:       "C",
		TextColumn:        "D",
		OptionsColumns:    "E",
		AnswerColumn:      "I",
		ExplanationColumn: "J",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportQuestions loads questions from an Excel or CSV file into the bank.
func ImportQuestions(bank *Bank, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(bank, config)
	}

	return importFromExcel(bank, config)
}

func importFromExcel(bank *Bank, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(bank, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func importFromCSV(bank *Bank, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(bank, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow converts one sheet row into a question and adds it to the bank.
func processRow(bank *Bank, row []string, config ImportConfig, result *ImportResult) error {
	cell := func(column string) string {
		if colIdx := columnToIndex(column); colIdx >= 0 && colIdx < len(row) {
			return strings.TrimSpace(row[colIdx])
		}
		return ""
	}

	q := models.Question{
		ID:            cell(config.IDColumn),
		Subject:       cell(config.SubjectColumn),
		Topic:         cell(config.TopicColumn),
		Text:          cell(config.TextColumn),
		CorrectAnswer: cell(config.AnswerColumn),
		Explanation:   cell(config.ExplanationColumn),
	}

	// Four consecutive option columns starting at OptionsColumns
	optStart := columnToIndex(config.OptionsColumns)
	for i := 0; i < 4; i++ {
		if colIdx := optStart + i; colIdx < len(row) {
			if opt := strings.TrimSpace(row[colIdx]); opt != "" {
				q.Options = append(q.Options, opt)
			}
		}
	}

	if q.ID == "" || q.Subject == "" || q.Text == "" {
		result.Skipped++
		return nil
	}
	if len(q.Options) != 4 {
		result.Skipped++
		return fmt.Errorf("question %s has %d options, need 4", q.ID, len(q.Options))
	}
	if q.CorrectAnswer == "" {
		result.Skipped++
		return fmt.Errorf("question %s has no correct answer", q.ID)
	}

	if _, exists := bank.Get(q.ID); exists {
		result.Skipped++
		return nil
	}

	bank.Add([]models.Question{q})
	result.Imported++
	return nil
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}

	index := 0
	for _, char := range column {
		if char < 'A' || char > 'Z' {
			return -1
		}
		index = index*26 + int(char-'A') + 1
	}
	return index - 1
}
