package mos

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Load reads the dataset at path. A missing or unreadable dataset is not
// fatal: the problem is logged as a warning and an empty catalog is returned.
func Load(path string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := LoadStrict(path)
	if err != nil {
		var missing *ReferenceDatasetMissingError
		if errors.As(err, &missing) {
			logger.Warn("MOS dataset not found, continuing with an empty catalog", zap.String("path", path), zap.Error(err))
		} else {
			logger.Warn("MOS dataset could not be parsed, continuing with an empty catalog", zap.String("path", path), zap.Error(err))
		}
		return Empty()
	}

	logger.Info("loaded MOS catalog", zap.String("path", path), zap.Int("entries", c.Len()))
	return c
}

// LoadStrict reads the dataset at path and reports missing or malformed data
// as ReferenceDatasetMissingError or ReferenceDatasetMalformedError.
func LoadStrict(path string) (*Catalog, error) {
	if path == "" {
		return nil, &ReferenceDatasetMissingError{Path: path, Cause: errors.New("no dataset path configured")}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &ReferenceDatasetMissingError{Path: path, Cause: err}
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVFile(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	default:
		return nil, &ReferenceDatasetMalformedError{Path: path, Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if err != nil {
		return nil, &ReferenceDatasetMalformedError{Path: path, Message: "failed to read rows", Cause: err}
	}

	c, err := FromRows(rows)
	if err != nil {
		return nil, &ReferenceDatasetMalformedError{Path: path, Message: err.Error()}
	}
	return c, nil
}

// ReadCSV builds a catalog from CSV content.
func ReadCSV(r io.Reader) (*Catalog, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, &ReferenceDatasetMalformedError{Path: "(reader)", Message: "failed to read rows", Cause: err}
	}
	return FromRows(rows)
}

// FromRows builds a catalog from a header row followed by data rows.
func FromRows(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset has no header row")
	}

	cols := indexHeader(rows[0])
	if _, ok := cols[colCode]; !ok {
		return nil, fmt.Errorf("no code column among headers %v", rows[0])
	}

	entries := make([]types.MOSEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if e, ok := entryFromRow(cols, row); ok {
			entries = append(entries, e)
		}
	}
	return New(entries), nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// readXLSX returns the rows of the first worksheet.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
