package sequence

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	NameCertificate = "certificate"
	NameBlotterCase = "blotter_case"
)

// Sequence holds the last issued value for a (name, year) counter.
type Sequence struct {
	SequenceName  string `gorm:"column:sequence_name;type:varchar(50);primaryKey" json:"sequence_name"`
	SequenceYear  int    `gorm:"column:sequence_year;primaryKey" json:"sequence_year"`
	SequenceValue int64  `gorm:"column:sequence_value;not null" json:"sequence_value"`
}

func (Sequence) TableName() string { return "sequences" }

// Seeder returns how many records already exist for the year; used the first
// time a counter row is created so numbering continues after legacy data.
type Seeder func(tx *gorm.DB, year int) (int64, error)

// Next increments and returns the counter. It must run inside a transaction:
// the counter row is locked FOR UPDATE until the caller commits.
func Next(tx *gorm.DB, name string, year int, seed Seeder) (int64, error) {
	var seq Sequence
	lock := clause.Locking{Strength: "UPDATE"}

	err := tx.Clauses(lock).
		Where("sequence_name = ? AND sequence_year = ?", name, year).
		Take(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var start int64
		if seed != nil {
			if start, err = seed(tx, year); err != nil {
				return 0, fmt.Errorf("seed %s/%d: %w", name, year, err)
			}
		}
		seq = Sequence{SequenceName: name, SequenceYear: year, SequenceValue: start}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq)
		if res.Error != nil {
			return 0, res.Error
		}
		// lost the insert race: read the winner's row under lock
		err = tx.Clauses(lock).
			Where("sequence_name = ? AND sequence_year = ?", name, year).
			Take(&seq).Error
	}
	if err != nil {
		return 0, err
	}

	seq.SequenceValue++
	if err := tx.Model(&Sequence{}).
		Where("sequence_name = ? AND sequence_year = ?", name, year).
		Update("sequence_value", seq.SequenceValue).Error; err != nil {
		return 0, err
	}
	return seq.SequenceValue, nil
}

// Format renders PREFIX-YEAR-NNNN.
func Format(prefix string, year int, n int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, n)
}
