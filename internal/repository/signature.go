package repository

import (
	"context"

	"gorm.io/gorm"

	"petition-backend/internal/models"
	"petition-backend/internal/storage"
)

type SignatureRepository struct {
	db *storage.Postgres
}

func NewSignatureRepository(db *storage.Postgres) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// Append commits the record and the counter increment in one transaction so
// no reader ever observes one without the other.
func (r *SignatureRepository) Append(ctx context.Context, record *models.SignatureRecord) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		return tx.Model(&models.GlobalStats{}).
			Where("id = ?", 1).
			UpdateColumn("total_signatures", gorm.Expr("total_signatures + ?", 1)).
			Error
	})
}

// Total reads the running counter. A missing stats row counts as zero.
func (r *SignatureRepository) Total(ctx context.Context) (int64, error) {
	var stats models.GlobalStats
	err := r.db.DB.WithContext(ctx).First(&stats, 1).Error

	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return stats.TotalSignatures, nil
}

// ForEachBatch streams every record ordered by creation time ascending,
// batchSize rows at a time. A server-side cursor keeps memory bounded;
// FindInBatches would paginate by the uuid primary key and lose the ordering.
func (r *SignatureRepository) ForEachBatch(ctx context.Context, batchSize int, fn func([]models.SignatureRecord) error) error {
	db := r.db.DB.WithContext(ctx)

	rows, err := db.Model(&models.SignatureRecord{}).
		Order("created_at ASC").
		Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	batch := make([]models.SignatureRecord, 0, batchSize)
	for rows.Next() {
		var rec models.SignatureRecord
		if err := db.ScanRows(rows, &rec); err != nil {
			return err
		}

		batch = append(batch, rec)
		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(batch) > 0 {
		return fn(batch)
	}

	return nil
}
