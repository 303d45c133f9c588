package capture

import "github.com/oyaguma3/glasses-session-broker/pkg/apperr"

var (
	// ErrRequestNotFound はキャプチャ要求が見つからない場合のエラー
	ErrRequestNotFound = apperr.ErrRequestNotFound

	// ErrRequestExpired はキャプチャ要求の有効期限切れエラー
	ErrRequestExpired = apperr.ErrRequestExpired
)

// OutcomeError はOutcomeに対応するエラーを返す。解決成功時はnil。
func OutcomeError(o Outcome) error {
	switch o {
	case OutcomeExpired:
		return ErrRequestExpired
	case OutcomeNotFound:
		return ErrRequestNotFound
	}
	return nil
}
