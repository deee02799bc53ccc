package sequence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&Sequence{}))
	return db
}

func next(t *testing.T, db *gorm.DB, name string, year int, seed Seeder) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = Next(tx, name, year, seed)
		return err
	}))
	return n
}

func TestNextIncrementsPerYear(t *testing.T) {
	db := openDB(t)

	assert.EqualValues(t, 1, next(t, db, NameCertificate, 2025, nil))
	assert.EqualValues(t, 2, next(t, db, NameCertificate, 2025, nil))
	assert.EqualValues(t, 1, next(t, db, NameCertificate, 2026, nil))
	assert.EqualValues(t, 1, next(t, db, NameBlotterCase, 2025, nil))
	assert.EqualValues(t, 3, next(t, db, NameCertificate, 2025, nil))
}

func TestNextSeedsOnlyOnce(t *testing.T) {
	db := openDB(t)
	calls := 0
	seed := func(_ *gorm.DB, year int) (int64, error) {
		calls++
		assert.Equal(t, 2025, year)
		return 3, nil
	}

	assert.EqualValues(t, 4, next(t, db, NameCertificate, 2025, seed))
	assert.EqualValues(t, 5, next(t, db, NameCertificate, 2025, seed))
	assert.Equal(t, 1, calls)
}

func TestNextRollsBackWithTransaction(t *testing.T) {
	db := openDB(t)
	assert.EqualValues(t, 1, next(t, db, NameCertificate, 2025, nil))

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Next(tx, NameCertificate, 2025, nil); err != nil {
			return err
		}
		return fmt.Errorf("insert failed")
	})
	require.Error(t, err)

	assert.EqualValues(t, 2, next(t, db, NameCertificate, 2025, nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "BRGY-2025-0004", Format("BRGY", 2025, 4))
	assert.Equal(t, "BC-2026-0120", Format("BC", 2026, 120))
	assert.Equal(t, "BRGY-2025-12345", Format("BRGY", 2025, 12345))
}
