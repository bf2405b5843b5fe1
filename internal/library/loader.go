package library

import (
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Dataset column headers.
const (
	colName    = "도서관명"
	colAddress = "주소"
	colCode    = "도서관코드"
)

// Provider hands out the library index. Implemented by Loader; handlers
// depend on this so tests can substitute a pre-built index.
type Provider interface {
	Index() *Index
}

// Loader builds the library index from the reference dataset on first use.
// A missing or unreadable dataset degrades to an empty index rather than
// failing the service.
type Loader struct {
	path   string
	logger *zap.Logger
	once   sync.Once
	index  *Index
}

// NewLoader creates a loader for the dataset at path.
func NewLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger,
	}
}

// Index returns the library index, building it on first call. The index is
// immutable for the process lifetime; a restart is required to reload.
func (l *Loader) Index() *Index {
	l.once.Do(l.build)

	return l.index
}

func (l *Loader) build() {
	records, err := ReadDataset(l.path)
	if err != nil {
		l.logger.Warn("library dataset unavailable, serving an empty index",
			zap.String("path", l.path),
			zap.Error(err),
		)

		l.index = NewIndex(nil)

		return
	}

	l.index = NewIndex(records)

	l.logger.Info("library dataset loaded",
		zap.String("path", l.path),
		zap.Int("records", l.index.Len()),
	)
}

// ReadDataset reads library records from an xlsx file. The first sheet must
// carry a header row naming the library name, address, and code columns.
func ReadDataset(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read dataset rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", path)
	}

	nameCol, addrCol, codeCol := -1, -1, -1

	for i, header := range rows[0] {
		switch header {
		case colName:
			nameCol = i
		case colAddress:
			addrCol = i
		case colCode:
			codeCol = i
		}
	}

	if nameCol < 0 || addrCol < 0 || codeCol < 0 {
		return nil, fmt.Errorf("dataset %s is missing required columns", path)
	}

	records := make([]Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}

		addr := cell(row, addrCol)
		region, district := SplitAddress(addr)

		records = append(records, Record{
			Name:     cell(row, nameCol),
			Address:  addr,
			Code:     code,
			Region:   region,
			District: district,
		})
	}

	return records, nil
}

// cell reads a column from a possibly ragged row.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}

	return row[col]
}
