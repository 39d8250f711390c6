package models

// GlobalStats is a singleton row (id = 1). TotalSignatures is only ever
// mutated inside the same transaction that inserts a SignatureRecord.
type GlobalStats struct {
	ID              int   `gorm:"primaryKey" json:"-"`
	TotalSignatures int64 `gorm:"not null;default:0" json:"totalSignatures"`
}

func (GlobalStats) TableName() string {
	return "global_stats"
}
