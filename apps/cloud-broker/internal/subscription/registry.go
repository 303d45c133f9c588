// Package subscription はTPAの購読管理とイベント配信先の計算を提供する。
// 購読状態はUserSessionが保持し、本パッケージは独自の状態を持たない。
package subscription

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// Registry は購読の更新と配信先の計算を行う。
type Registry struct {
	fields *logging.CommonFields
}

// New は新しいRegistryを生成する。
func New(fields *logging.CommonFields) *Registry {
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &Registry{fields: fields}
}

// Subscribe はアプリの購読集合をstreamsで置き換える。
// 未知のストリームが含まれる場合は何も変更しない。
func (r *Registry) Subscribe(sess *session.UserSession, packageName string, streams []protocol.StreamType) error {
	for _, st := range streams {
		if !st.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStream, st)
		}
	}
	if !sess.SetSubscriptions(packageName, streams) {
		return ErrAppNotRunning
	}

	slog.Debug("subscriptions updated",
		append(r.fields.SessionLogFields(logging.EventSubscription, sess.ID(), sess.UserID()),
			logging.FieldPackageName, packageName,
			"stream_count", len(streams))...)
	return nil
}

// Unsubscribe はアプリの購読から指定ストリームを外す。
// streamsを省略した場合はすべて外す。
func (r *Registry) Unsubscribe(sess *session.UserSession, packageName string, streams ...protocol.StreamType) {
	sess.RemoveSubscriptions(packageName, streams...)
}

// SubscribersFor はstreamを購読しているアプリをパッケージ名順で返す。
// 呼び出しのたびにセッションの現在の購読状態から計算する。
func (r *Registry) SubscribersFor(sess *session.UserSession, stream protocol.StreamType) []string {
	var out []string
	sess.ViewSubscriptions(func(packageName string, set map[protocol.StreamType]struct{}) {
		for st := range set {
			if matches(st, stream) {
				out = append(out, packageName)
				return
			}
		}
	})
	sort.Strings(out)
	return out
}

// HasSubscribers はstreamの購読者が1つ以上いるかどうかを返す。
func (r *Registry) HasSubscribers(sess *session.UserSession, stream protocol.StreamType) bool {
	return len(r.SubscribersFor(sess, stream)) > 0
}

// MicrophoneRequired はいずれかのアプリがマイク入力を要するストリームを購読しているかを返す。
func (r *Registry) MicrophoneRequired(sess *session.UserSession) bool {
	required := false
	sess.ViewSubscriptions(func(_ string, set map[protocol.StreamType]struct{}) {
		for st := range set {
			if st.RequiresMicrophone() {
				required = true
				return
			}
		}
	})
	return required
}

// matches は購読subがイベントeventに一致するかを判定する。
// ワイルドカードはすべてに一致し、言語付きストリームは完全一致のみ。
// 言語修飾のない文字起こし購読は既定言語のイベントを受け取る。
func matches(sub, event protocol.StreamType) bool {
	if sub == protocol.StreamAll || sub == event {
		return true
	}
	if sub.Language() == "" && sub == event.Base() {
		return event.Language() == "" || event.Language() == protocol.DefaultLanguage
	}
	return false
}
