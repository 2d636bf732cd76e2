package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

const sheetName = "Divergencias"

// Emitter writes the divergence table as a single-sheet xlsx workbook.
// This is the pipeline's only durable side effect.
type Emitter struct {
	log *logger.Logger
}

func NewEmitter(log *logger.Logger) *Emitter {
	return &Emitter{log: log.With("service", "Emitter")}
}

func (e *Emitter) WriteWorkbook(table Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	e.log.Info("Workbook written", "path", path, "rows", len(table.Rows))
	return nil
}
