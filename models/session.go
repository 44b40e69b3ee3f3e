package models

// Stage menentukan layar awal yang harus ditampilkan UI.
type Stage string

const (
	StageSetup      Stage = "setup"       // belum scan QR toko
	StageSelectUser Stage = "select_user" // toko sudah terhubung, belum login
	StageReady      Stage = "ready"       // sudah login
)

const DefaultStoreName = "Toko Saya"

// Session is the explicit till session context, read key by key from the
// local store.
type Session struct {
	StoreSlug string `json:"store_slug"`
	StoreName string `json:"store_name"`
	APIURL    string `json:"api_url"`
	Token     string `json:"-"`
	UserName  string `json:"user_name"`
}

func (s Session) SetupComplete() bool {
	return s.StoreSlug != "" && s.APIURL != ""
}

func (s Session) HasToken() bool {
	return s.Token != ""
}

func (s Session) DisplayStoreName() string {
	if s.StoreName == "" {
		return DefaultStoreName
	}
	return s.StoreName
}
