package session

import (
	"sync"
)

// fakeConn はテスト用のConnection実装。
type fakeConn struct {
	mu          sync.Mutex
	sent        []any
	binary      [][]byte
	closed      bool
	closeReason string
}

func newFakeConn() *fakeConn {
	return &fakeConn{}
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrDeviceNotConnected
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) SendBinary(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrDeviceNotConnected
	}
	c.binary = append(c.binary, data)
	return nil
}

func (c *fakeConn) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeReason = reason
}

func (c *fakeConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}
