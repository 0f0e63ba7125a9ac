package admin

import (
	"encoding/base64"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"
)

// encodeHash собирает хеш в том же формате, что scripts/generate_hash.go.
func encodeHash(password string, salt []byte) string {
	var (
		memory      uint32 = 65536
		iterations  uint32 = 3
		parallelism uint8  = 2
		keyLength   uint32 = 32
	)
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestVerifyArgon2id(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := encodeHash("секретный-пароль", salt)

	if !verifyArgon2id("секретный-пароль", encoded) {
		t.Error("правильный пароль отклонён")
	}
	if verifyArgon2id("неправильный", encoded) {
		t.Error("неправильный пароль принят")
	}
}

func TestVerifyArgon2idMalformedHash(t *testing.T) {
	bad := []string{
		"",
		"не-хеш-вообще",
		"$argon2id$v=19$m=65536,t=3,p=2$tolko-sol",
		"$argon2id$v=19$плохие-параметры$c2FsdA$aGFzaA",
	}
	for _, h := range bad {
		if verifyArgon2id("пароль", h) {
			t.Errorf("битый хеш %q прошёл проверку", h)
		}
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a := generateSecureToken()
	b := generateSecureToken()

	if a == "" || b == "" {
		t.Fatal("пустой токен")
	}
	if a == b {
		t.Error("два токена подряд совпали")
	}
}
