// Package export renders the complete signature table as an xlsx workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"petition-backend/internal/models"
)

const (
	sheetName = "petitions"
	batchSize = 500
)

var header = []interface{}{
	"Nom", "Cognom1", "Cognom2", "DataNaixement", "TipusID", "NumID", "Address", "CreatedAt",
}

// Store is the read-side capability the exporter needs.
type Store interface {
	ForEachBatch(ctx context.Context, batchSize int, fn func([]models.SignatureRecord) error) error
}

// WriteXLSX streams every signature, ordered by creation time ascending, into
// a single-sheet workbook. The stream writer keeps memory bounded even for a
// full extraction.
func WriteXLSX(ctx context.Context, store Store, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	err = store.ForEachBatch(ctx, batchSize, func(records []models.SignatureRecord) error {
		for _, rec := range records {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}

			err = sw.SetRow(cell, []interface{}{
				rec.Nom,
				rec.Cognom1,
				rec.Cognom2,
				rec.DataNaixement,
				rec.TipusID,
				rec.NumID,
				rec.Address,
				rec.CreatedAt.UTC().Format(time.RFC3339),
			})
			if err != nil {
				return err
			}

			row++
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to stream signatures: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
