package subscription

import (
	"errors"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

var (
	// ErrAppNotRunning はセッション内に接続エントリのないアプリからの購読
	ErrAppNotRunning = apperr.ErrAppNotRunning
	// ErrInvalidStream は未知のストリーム種別
	ErrInvalidStream = errors.New("invalid stream type")
)
