package tpa

import (
	"errors"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

var (
	// ErrRegistrationNotFound はTPAサーバー登録が見つからない場合のエラー
	ErrRegistrationNotFound = apperr.ErrRegistrationNotFound

	// ErrInvalidAPIKey はAPIキーがカタログのハッシュと一致しない場合のエラー
	ErrInvalidAPIKey = apperr.ErrInvalidAPIKey

	// ErrAppNotFound はカタログにアプリが存在しない場合のエラー
	ErrAppNotFound = apperr.ErrAppNotFound

	// ErrAPIKeyRequired は一時キーが無効化されている状態でAPIキーが省略された場合のエラー
	ErrAPIKeyRequired = errors.New("API key required")
)
