package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryAppender keeps appended rows in memory. Used for dry runs and tests.
type MemoryAppender struct {
	mutex  sync.Mutex
	sheets map[string][][]any
}

func NewMemoryAppender() *MemoryAppender {
	return &MemoryAppender{
		sheets: make(map[string][][]any),
	}
}

func (m *MemoryAppender) AppendRows(_ context.Context, sheetName string, rows [][]any) Result {
	if len(rows) == 0 {
		return failed("appendRows called with empty rows.")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	start := len(m.sheets[sheetName]) + 1
	m.sheets[sheetName] = append(m.sheets[sheetName], rows...)

	columns := 0
	cells := 0
	for _, r := range rows {
		columns = max(columns, len(r))
		cells += len(r)
	}

	return Result{
		OK: true,
		Updates: &Updates{
			UpdatedRange:   fmt.Sprintf("%s!A%d", sheetName, start),
			UpdatedRows:    int64(len(rows)),
			UpdatedColumns: int64(columns),
			UpdatedCells:   int64(cells),
		},
	}
}

// Rows returns a copy of all rows appended to the given sheet
func (m *MemoryAppender) Rows(sheetName string) [][]any {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	rows := make([][]any, len(m.sheets[sheetName]))
	copy(rows, m.sheets[sheetName])
	return rows
}
