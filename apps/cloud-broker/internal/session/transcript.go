package session

import (
	"sync"
	"time"
)

// TranscriptSegment は文字起こしの1区間。
type TranscriptSegment struct {
	Text      string
	SpeakerID string
	Language  string
	IsFinal   bool
	Timestamp time.Time
}

// TranscriptStore は言語ごとの文字起こし履歴を保持する。
// 言語指定のない区間は従来互換のリストに格納する。
// 確定区間は追記のみで、未確定区間は直後の区間で置き換えられる。
type TranscriptStore struct {
	mu         sync.Mutex
	legacy     []TranscriptSegment
	byLanguage map[string][]TranscriptSegment
	retention  time.Duration
}

// NewTranscriptStore は新しいTranscriptStoreを生成する。
func NewTranscriptStore(retention time.Duration) *TranscriptStore {
	return &TranscriptStore{
		byLanguage: make(map[string][]TranscriptSegment),
		retention:  retention,
	}
}

// Append は区間を追加する。
func (t *TranscriptStore) Append(seg TranscriptSegment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seg.Language == "" {
		t.legacy = appendSegment(t.legacy, seg, t.retention)
		return
	}
	t.byLanguage[seg.Language] = appendSegment(t.byLanguage[seg.Language], seg, t.retention)
}

func appendSegment(list []TranscriptSegment, seg TranscriptSegment, retention time.Duration) []TranscriptSegment {
	if n := len(list); n > 0 && !list[n-1].IsFinal {
		list[n-1] = seg
	} else {
		list = append(list, seg)
	}
	if retention <= 0 {
		return list
	}

	cutoff := seg.Timestamp.Add(-retention)
	i := 0
	for i < len(list) && list[i].Timestamp.Before(cutoff) {
		i++
	}
	if i == 0 {
		return list
	}
	return append(list[:0:0], list[i:]...)
}

// Segments は指定言語の区間をコピーして返す。空文字列は従来互換のリスト。
func (t *TranscriptStore) Segments(language string) []TranscriptSegment {
	t.mu.Lock()
	defer t.mu.Unlock()

	src := t.legacy
	if language != "" {
		src = t.byLanguage[language]
	}
	out := make([]TranscriptSegment, len(src))
	copy(out, src)
	return out
}

// Languages は履歴を持つ言語の一覧を返す。
func (t *TranscriptStore) Languages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	langs := make([]string, 0, len(t.byLanguage))
	for lang := range t.byLanguage {
		langs = append(langs, lang)
	}
	return langs
}
