package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry membaca klaim "exp" dari token backend tanpa verifikasi tanda tangan.
// Till tidak memegang secret backend; ini hanya untuk mendeteksi sesi yang sudah
// pasti kadaluarsa sebelum mengirim request. Token opaque (bukan JWT) -> ok=false.
func TokenExpiry(tokenString string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired is true only for JWT tokens whose exp lies before now.
func TokenExpired(tokenString string, now time.Time) bool {
	exp, ok := TokenExpiry(tokenString)
	if !ok {
		return false
	}
	return !now.Before(exp)
}
