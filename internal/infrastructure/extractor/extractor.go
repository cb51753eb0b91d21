package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/docuintel/docuintel/internal/core/domain"
)

// Extractor converts stored document bytes into plain text. Routing is by
// MIME type with a filename-extension fallback; anything unrecognized is
// treated as plain text and must be valid UTF-8.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, filename, mimeType string, data []byte) (string, error) {
	switch kind(filename, mimeType) {
	case "pdf":
		return extractPDF(filename, data)
	case "xlsx":
		return extractSpreadsheet(filename, data)
	default:
		return extractPlaintext(filename, data)
	}
}

func kind(filename, mimeType string) string {
	switch {
	case mimeType == "application/pdf":
		return "pdf"
	case mimeType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".xlsx", ".xlsm":
		return "xlsx"
	}
	return "plaintext"
}

func extractPDF(filename string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse pdf", fmt.Errorf("%s: %w", filename, err))
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", fmt.Errorf("%s: %w", filename, err))
	}
	raw, err := io.ReadAll(textReader)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read pdf text", fmt.Errorf("%s: %w", filename, err))
	}
	return strings.TrimSpace(string(raw)), nil
}

func extractSpreadsheet(filename string, data []byte) (string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse spreadsheet", fmt.Errorf("%s: %w", filename, err))
	}
	defer book.Close()

	var builder strings.Builder
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "read sheet rows", fmt.Errorf("%s/%s: %w", filename, sheet, err))
		}
		for _, row := range rows {
			builder.WriteString(strings.Join(row, "\t"))
			builder.WriteString("\n")
		}
	}
	return strings.TrimSpace(builder.String()), nil
}

func extractPlaintext(filename string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.WrapError(domain.ErrExtraction, "decode text", fmt.Errorf("unsupported binary format: %s", filename))
	}
	return strings.TrimSpace(string(data)), nil
}
