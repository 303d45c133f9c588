package store

import (
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// Liveness はTUI上での登録の生存状態を表す。
type Liveness string

const (
	// LivenessAlive は有効期間内にハートビートがある
	LivenessAlive Liveness = "alive"
	// LivenessOverdue は有効期間を過ぎたがブローカーがまだstaleにしていない
	LivenessOverdue Liveness = "overdue"
	// LivenessStale はブローカーがstaleと判定済み
	LivenessStale Liveness = "stale"
)

// Classify は登録の生存状態を判定する。
// ブローカーは直近の間隔に応じて有効期間を広げるため、
// 期間超過はstaleとは見なさずoverdueとして扱う。
func Classify(reg *model.TpaServerRegistration, window time.Duration, now time.Time) Liveness {
	if reg.Stale {
		return LivenessStale
	}
	if HeartbeatAge(reg, now) > window {
		return LivenessOverdue
	}
	return LivenessAlive
}

// HeartbeatAge は最終ハートビートからの経過時間を返す。
func HeartbeatAge(reg *model.TpaServerRegistration, now time.Time) time.Duration {
	age := now.Sub(reg.LastHeartbeat())
	if age < 0 {
		return 0
	}
	return age
}

// LivenessCounts は生存状態ごとの件数。
type LivenessCounts struct {
	Alive   int
	Overdue int
	Stale   int
}

// CountLiveness は登録一覧を生存状態ごとに集計する。
func CountLiveness(regs []*model.TpaServerRegistration, window time.Duration, now time.Time) LivenessCounts {
	var c LivenessCounts
	for _, reg := range regs {
		switch Classify(reg, window, now) {
		case LivenessAlive:
			c.Alive++
		case LivenessOverdue:
			c.Overdue++
		case LivenessStale:
			c.Stale++
		}
	}
	return c
}
