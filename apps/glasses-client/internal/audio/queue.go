package audio

import (
	"context"
	"sync"

	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// Queue はキャプチャとアップリンクの間に置く有界キュー。
// 満杯時は最も古いチャンクを捨て、Pushは決してブロックしない。
type Queue struct {
	mu      sync.Mutex
	buf     []*protocol.AudioChunk
	head    int
	size    int
	dropped uint64
	closed  bool
	notify  chan struct{}
}

// NewQueue は容量capacityのQueueを生成する。
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{
		buf:    make([]*protocol.AudioChunk, capacity),
		notify: make(chan struct{}, 1),
	}
}

// Push はチャンクを末尾に追加する。古いチャンクを捨てた場合はtrueを返す。
func (q *Queue) Push(c *protocol.AudioChunk) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	dropped := false
	if q.size == len(q.buf) {
		q.buf[q.head] = nil
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
		dropped = true
	}
	q.buf[(q.head+q.size)%len(q.buf)] = c
	q.size++
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return dropped
}

// Pop は先頭のチャンクを取り出す。空の場合は到着かctxの終了まで待つ。
func (q *Queue) Pop(ctx context.Context) (*protocol.AudioChunk, error) {
	for {
		q.mu.Lock()
		if q.size > 0 {
			c := q.buf[q.head]
			q.buf[q.head] = nil
			q.head = (q.head + 1) % len(q.buf)
			q.size--
			q.mu.Unlock()
			return c, nil
		}
		if q.closed {
			q.mu.Unlock()
			return nil, ErrQueueClosed
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len は滞留中のチャンク数を返す。
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Dropped は容量超過で破棄したチャンクの累計を返す。
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close はキューを閉じる。滞留分はPopで取り出せる。
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// QueueSink は符号化済みチャンクをQueueへ積むAudioSink。
// 生PCMはonPCMが指定されていればそちらへ渡す。
type QueueSink struct {
	queue *Queue
	onPCM func([]int16)
}

// NewQueueSink は新しいQueueSinkを生成する。
func NewQueueSink(q *Queue, onPCM func([]int16)) *QueueSink {
	return &QueueSink{queue: q, onPCM: onPCM}
}

// OnPCM は生PCMフレームを受け取る。
func (s *QueueSink) OnPCM(pcm []int16) {
	if s.onPCM != nil {
		s.onPCM(pcm)
	}
}

// OnChunk は符号化済みチャンクをキューへ積む。
func (s *QueueSink) OnChunk(chunk *protocol.AudioChunk) {
	s.queue.Push(chunk)
}
