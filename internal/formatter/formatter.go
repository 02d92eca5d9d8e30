// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/shared"
)

// CatalogExport is a fully materialized sheet catalog ready for export.
type CatalogExport struct {
	Sheets      []models.Sheet `json:"sheets"`
	TotalSheets int            `json:"totalSheets"`
}

// ExportToCSV converts a CatalogExport to CSV format with columns: ID, Title, Composer, Key, Source, Level, Genre, ExamPiece
func ExportToCSV(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Composer", "Key", "Source", "Level", "Genre", "ExamPiece"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, sheet := range export.Sheets {
		record := []string{
			sheet.ID,
			sheet.Title,
			sheet.Composer,
			sheet.Key,
			shared.StringValue(sheet.SourceTitle, ""),
			shared.StringValue(sheet.LevelName, ""),
			shared.StringValue(sheet.GenreName, ""),
			strconv.FormatBool(sheet.ExamPiece),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a CatalogExport to a Markdown document grouped as a single table
func ExportToMarkdown(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Sheet Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Sheets**: %d\n\n", export.TotalSheets))

	buf.WriteString("| Title | Composer | Key | Source | Level | Genre | Exam |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, sheet := range export.Sheets {
		exam := ""
		if sheet.ExamPiece {
			exam = "yes"
		}
		composer := sheet.Composer
		if composer == "" {
			composer = "-"
		}
		key := sheet.Key
		if key == "" {
			key = "-"
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			sheet.Title,
			composer,
			key,
			shared.StringValue(sheet.SourceTitle, "-"),
			shared.StringValue(sheet.LevelName, "-"),
			shared.StringValue(sheet.GenreName, "-"),
			exam,
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CatalogExport to plain text format
func ExportToText(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Sheets: %d\n\n", export.TotalSheets))
	for i, sheet := range export.Sheets {
		composer := sheet.Composer
		if composer == "" {
			composer = "Unknown"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, composer, sheet.Title))
	}

	return buf.Bytes(), nil
}

// ToJSON generates an indented JSON representation of the catalog export
func ToJSON(export *CatalogExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// WriteExport serializes the export in the requested format and writes it to path.
//
// Supported formats are csv, markdown, txt and json; json is the default.
func WriteExport(export *CatalogExport, format, path string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(export)
	case "markdown", "md":
		data, err = ExportToMarkdown(export)
	case "txt", "text":
		data, err = ExportToText(export)
	case "json", "":
		data, err = ToJSON(export)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
