package tpa

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashAPIKey はAPIキーのBLAKE3ハッシュを16進文字列で返す。
// カタログのhashed_api_keyと同じ形式。
func HashAPIKey(apiKey string) string {
	sum := blake3.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// verifyAPIKey はAPIキーが保存済みハッシュと一致するかを定数時間で比較する。
func verifyAPIKey(apiKey, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashAPIKey(apiKey)), []byte(storedHash)) == 1
}
