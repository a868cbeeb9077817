package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Table is a fully loaded input file: one header row plus data rows. Rows
// may be ragged and shorter than the header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Options controls how a file is read.
type Options struct {
	// Separator for delimited text: "auto" (default) or a literal
	// single-character separator.
	Separator string

	// Sheet selects a worksheet by name for workbook files; empty means
	// the first sheet.
	Sheet string

	// Encoding for delimited text: "auto" (default), "utf-8",
	// "windows-1252" or "windows-874". Auto uses UTF-8 when the bytes
	// validate, windows-1252 otherwise.
	Encoding string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile loads a CSV/TSV/TXT or XLSX/XLSM file into a Table. Legacy .xls
// workbooks are not supported; unknown extensions are tried as delimited
// text, matching how real exports are often misnamed.
func ReadFile(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path, opts)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbook %s, re-save as .xlsx or .csv", common.ErrUnsupportedFormat, filepath.Base(path))
	default:
		return readDelimited(path, opts)
	}
}

func readDelimited(path string, opts Options) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	text, err := decodeText(raw, opts.Encoding)
	if err != nil {
		return nil, err
	}

	sep := opts.Separator
	if sep == "" || sep == "auto" {
		sep = detectSeparator(text)
	}
	if len(sep) != 1 {
		return nil, fmt.Errorf("%w: separator %q must be a single character", common.ErrUnsupportedFormat, sep)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = rune(sep[0])
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// Tolerate malformed rows instead of failing the file.
			continue
		}
		records = append(records, record)
	}

	return tableFromRecords(records)
}

func readWorkbook(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return tableFromRecords(rows)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file contains no rows", common.ErrEmptyInput)
	}
	return &Table{
		Headers: dedupeHeaders(records[0]),
		Rows:    records[1:],
	}, nil
}

// decodeText converts raw file bytes to UTF-8 text, stripping any BOM.
func decodeText(raw []byte, encoding string) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if encoding == "" || encoding == "auto" {
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		encoding = "windows-1252"
	}

	var cm *charmap.Charmap
	switch encoding {
	case "utf-8":
		return string(raw), nil
	case "windows-1252":
		cm = charmap.Windows1252
	case "windows-874", "tis-620":
		cm = charmap.Windows874
	default:
		return "", fmt.Errorf("%w: unknown encoding %q", common.ErrUnsupportedFormat, encoding)
	}

	decoded, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", encoding, err)
	}
	return string(decoded), nil
}

// detectSeparator picks the candidate occurring most often in the first
// non-empty line, defaulting to comma.
func detectSeparator(text string) string {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	best, bestCount := ",", 0
	for _, cand := range []string{",", "\t", ";", "|"} {
		if n := strings.Count(line, cand); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// dedupeHeaders disambiguates repeated header names the way spreadsheet
// tools do: "qty", "qty.1", "qty.2".
func dedupeHeaders(headers []string) []string {
	seen := make(map[string]int)
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			out[i] = fmt.Sprintf("%s.%d", h, n+1)
		} else {
			seen[h] = 0
			out[i] = h
		}
	}
	return out
}
