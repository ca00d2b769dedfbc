package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hydroline/hydroline/pkg/database"
)

type uniqueRow struct {
	gorm.Model
	Code string `gorm:"uniqueIndex;size:50;not null"`
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "dsn")
	assert.Error(t, err)
}

// The 409 paths (reviews, registration, catalog natural keys) depend on
// duplicate-key violations surfacing as gorm.ErrDuplicatedKey on every
// driver, sqlite included.
func TestOpenTranslatesDuplicateKey(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&uniqueRow{}))

	require.NoError(t, db.Gorm.Create(&uniqueRow{Code: "hgp-2a"}).Error)

	err = db.Gorm.Create(&uniqueRow{Code: "hgp-2a"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
