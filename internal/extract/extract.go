package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/vmduarte/conciliador-backend/internal/pkg/errors"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

const previewChars = 600

// Extractor turns an arbitrary input file (XLSX/XLS, PDF, TXT/CSV) into one
// text blob the oracle can read. Format is detected by extension first, then
// by magic bytes, so mislabeled uploads still land on the right path.
type Extractor struct {
	log *logger.Logger
}

func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{log: log.With("service", "Extractor")}
}

// File extracts the text of a single file. The only fatal failure is a path
// that does not resolve to a readable file; format-level trouble degrades to
// raw byte decoding instead of aborting the pipeline.
func (e *Extractor) File(path, label string) (string, error) {
	e.log.Info("Reading file", "label", label, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: file %s", pkgerrors.ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case ext == ".pdf" || isPDF(data):
		return e.extractPDF(data, label), nil
	case isOLE(data):
		// Legacy binary .xls. Only OOXML workbooks are parseable here,
		// so the bytes go through as-is.
		e.log.Warn("Legacy .xls (OLE) workbook cannot be parsed, using raw bytes",
			"label", label, "path", path, "raw_len", len(data))
		return string(data), nil
	case ext == ".xlsx" || ext == ".xls" || isZip(data):
		return e.extractSpreadsheet(data, label), nil
	default:
		text := string(data)
		e.logPreview(label, "TXT/CSV", text)
		return text, nil
	}
}

// PDF starts with "%PDF-".
func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// ZIP local file header: PK\x03\x04 (xlsx is a zip container).
func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

// OLE compound file header (legacy binary .xls).
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func isOLE(b []byte) bool {
	return len(b) >= len(oleMagic) && bytes.Equal(b[:len(oleMagic)], oleMagic)
}

func (e *Extractor) extractPDF(data []byte, label string) string {
	text, err := pdfPlainText(data)
	if err != nil {
		// A partially garbled raw decode is still more useful to the
		// oracle than an aborted run.
		e.log.Warn("PDF extraction failed, falling back to raw bytes",
			"label", label, "error", err, "raw_len", len(data))
		return string(data)
	}
	e.logPreview(label, "PDF", text)
	return text
}

func pdfPlainText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// extractSpreadsheet serializes the first sheet to semicolon-delimited text.
// The delimiter matches the oracle's output format, which keeps the prompt
// and the expected reply in one style.
func (e *Extractor) extractSpreadsheet(data []byte, label string) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		e.log.Warn("Spreadsheet open failed, falling back to raw bytes",
			"label", label, "error", err)
		return string(data)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		e.log.Warn("Spreadsheet rows read failed, falling back to raw bytes",
			"label", label, "sheet", sheets[0], "error", err)
		return string(data)
	}

	var out strings.Builder
	for i, row := range rows {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(strings.Join(row, ";"))
	}
	text := out.String()
	e.logPreview(label, "Excel", text)
	return text
}

func (e *Extractor) logPreview(label, kind, text string) {
	preview := text
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}
	e.log.Debug("Extraction preview", "label", label, "kind", kind,
		"total_len", len(text), "preview", preview)
}
