package models

import "time"

// Key-key yang disimpan di local store. Setiap key dibaca sendiri-sendiri;
// key yang tidak ada artinya "belum dikonfigurasi", bukan error.
const (
	KeyStoreSlug = "pos_store_slug"
	KeyStoreName = "pos_store_name"
	KeyAPIURL    = "pos_api_url"
	KeyToken     = "pos_token"
	KeyUserName  = "pos_user_name"
	KeyStartCash = "pos_start_cash"
)

// Setting is one row of the local key-value store.
type Setting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
