package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Statistics は運用ダッシュボード向けの集計値を表す。
type Statistics struct {
	RegistrationCount int
	Liveness          LivenessCounts
	PackageCount      int
	AppCount          int64

	// ブローカーに到達できない場合はBrokerErrを設定し、
	// ActiveSessionsは-1とする。
	BrokerStatus   string
	ActiveSessions int
	BrokerErr      string

	UpdatedAt time.Time
}

// StatisticsStore は統計情報の集計とキャッシュを提供する。
type StatisticsStore struct {
	registrations *RegistrationStore
	apps          *AppStore
	broker        *BrokerClient
	window        time.Duration
	clock         clock.PassiveClock

	mu       sync.RWMutex
	cache    *Statistics
	cacheTTL time.Duration
}

// NewStatisticsStore は新しいStatisticsStoreを生成する。
func NewStatisticsStore(
	registrations *RegistrationStore,
	apps *AppStore,
	broker *BrokerClient,
	window time.Duration,
	clk clock.PassiveClock,
) *StatisticsStore {
	return &StatisticsStore{
		registrations: registrations,
		apps:          apps,
		broker:        broker,
		window:        window,
		clock:         clk,
		cacheTTL:      30 * time.Second,
	}
}

// Get は統計情報を取得する（30秒キャッシュ）。
func (s *StatisticsStore) Get(ctx context.Context) (*Statistics, error) {
	s.mu.RLock()
	if s.cache != nil && s.clock.Since(s.cache.UpdatedAt) < s.cacheTTL {
		cached := *s.cache
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh はキャッシュを更新して最新の統計情報を取得する。
// Valkeyの読み取りに失敗した場合も部分的な結果を返す。
func (s *StatisticsStore) Refresh(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{UpdatedAt: s.clock.Now(), ActiveSessions: -1}

	var wg sync.WaitGroup
	var regErr, appErr error

	wg.Add(3)

	go func() {
		defer wg.Done()
		regs, err := s.registrations.List(ctx)
		if err != nil {
			regErr = err
			return
		}
		packages := make(map[string]struct{}, len(regs))
		for _, reg := range regs {
			packages[reg.PackageName] = struct{}{}
		}
		stats.RegistrationCount = len(regs)
		stats.PackageCount = len(packages)
		stats.Liveness = CountLiveness(regs, s.window, stats.UpdatedAt)
	}()

	go func() {
		defer wg.Done()
		count, err := s.apps.Count(ctx)
		if err != nil {
			appErr = err
			return
		}
		stats.AppCount = count
	}()

	go func() {
		defer wg.Done()
		health, err := s.broker.Health(ctx)
		if err != nil {
			stats.BrokerStatus = "unreachable"
			stats.BrokerErr = err.Error()
			return
		}
		stats.BrokerStatus = health.Status
		stats.ActiveSessions = health.Sessions
	}()

	wg.Wait()

	if err := errors.Join(regErr, appErr); err != nil {
		return stats, err
	}

	s.mu.Lock()
	s.cache = stats
	s.mu.Unlock()

	return stats, nil
}

// ClearCache はキャッシュをクリアする。
func (s *StatisticsStore) ClearCache() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
