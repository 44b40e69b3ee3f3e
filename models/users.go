package models

// Employee adalah akun kasir yang bisa login dengan PIN.
type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}
