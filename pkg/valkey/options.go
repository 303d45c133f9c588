// Package valkey はValkeyクライアントの共通機能を提供する。
package valkey

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Profile は利用アプリごとのタイムアウトとプール設定。
type Profile struct {
	DialTimeout    time.Duration
	CommandTimeout time.Duration
	PoolSize       int
	MinIdleConns   int
}

var (
	// BrokerProfile はcloud-broker向け。
	// WebSocket処理からセッション数に比例して並行アクセスされるためプールを大きめにとる。
	BrokerProfile = Profile{
		DialTimeout:    3 * time.Second,
		CommandTimeout: 2 * time.Second,
		PoolSize:       20,
		MinIdleConns:   4,
	}

	// TUIProfile は運用TUI向け。
	TUIProfile = Profile{
		DialTimeout:    5 * time.Second,
		CommandTimeout: 5 * time.Second,
		PoolSize:       5,
		MinIdleConns:   1,
	}
)

// WithTimeouts は接続・コマンドのタイムアウトを差し替えたコピーを返す。
// 0以下の値は元の設定を維持する。
func (p Profile) WithTimeouts(dial, command time.Duration) Profile {
	if dial > 0 {
		p.DialTimeout = dial
	}
	if command > 0 {
		p.CommandTimeout = command
	}
	return p
}

// Options はこのプロファイルで addr に接続するためのOptionsを返す。
func (p Profile) Options(addr, password string) *Options {
	return &Options{Addr: addr, Password: password, Profile: p}
}

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr     string // host:port
	Password string
	Profile  Profile
}

func (o *Options) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DialTimeout:  o.Profile.DialTimeout,
		ReadTimeout:  o.Profile.CommandTimeout,
		WriteTimeout: o.Profile.CommandTimeout,
		PoolSize:     o.Profile.PoolSize,
		MinIdleConns: o.Profile.MinIdleConns,
	}
}
