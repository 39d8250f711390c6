package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SignatureRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Nom           string    `gorm:"size:30;not null" json:"nom"`
	Cognom1       string    `gorm:"size:50;not null" json:"cognom1"`
	Cognom2       string    `gorm:"size:50" json:"cognom2"`
	DataNaixement string    `gorm:"size:8;not null" json:"datanaixement"`
	TipusID       string    `gorm:"size:10;not null" json:"tipusid"`
	NumID         string    `gorm:"size:8;not null" json:"numid"`
	Address       string    `gorm:"size:200" json:"address"`
	// Fingerprint is advisory: indexed so operators can query for duplicates,
	// but not unique. Duplicate signatures are a policy question, not a write error.
	Fingerprint   string    `gorm:"size:64;index;not null" json:"-"`
	IPFingerprint string    `gorm:"size:64;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *SignatureRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	return nil
}

func (SignatureRecord) TableName() string {
	return "signatures"
}
