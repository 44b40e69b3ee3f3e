package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/pos-till/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore adalah key-value store lokal till (pengganti AsyncStorage).
// Tiap Set/Delete berdiri sendiri, tidak ada transaksi antar key.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns ok=false when the key was never written or has been removed.
func (s *SettingsStore) Get(key string) (string, bool, error) {
	var row models.Setting
	err := s.db.Where("`key` = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *SettingsStore) Set(key, value string) error {
	row := models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.Where("`key` IN ?", keys).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// Clear menghapus semua key (dipakai saat "Ganti Toko").
func (s *SettingsStore) Clear() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}
