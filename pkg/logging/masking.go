// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// MaskUserID はユーザーID（メールアドレス）をマスキングする。
// メール形式: ローカル部の先頭2文字 + マスク + @ドメイン
// 例: alice@example.com → al***@example.com
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskUserID(userID string, enabled bool) string {
	if !enabled {
		return userID
	}
	local, domain, ok := strings.Cut(userID, "@")
	if !ok {
		return MaskPartial(userID, 2, 1, '*')
	}
	return MaskPartial(local, 2, 0, '*') + "@" + domain
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	for i := range runes {
		if i < keepPrefix || i >= length-keepSuffix {
			result[i] = runes[i]
			continue
		}
		result[i] = maskChar
	}
	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// UserID はユーザーIDをマスキングする。
func (m *Masker) UserID(userID string) string {
	return MaskUserID(userID, m.enabled)
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
