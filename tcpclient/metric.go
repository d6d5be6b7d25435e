package tcpclient

import (
	"sync/atomic"
)

// ConnectionMetrics contains atomic counters for a Client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ConnectionMetrics struct {
	// ConnectCount indicates the number of successful Open calls.
	ConnectCount atomic.Uint64
	// ConnectFailCount indicates the number of failed Open calls.
	ConnectFailCount atomic.Uint64

	// BytesSent indicates the number of bytes handed to the socket by Write.
	BytesSent atomic.Uint64
	// BytesRecv indicates the number of bytes received from the socket.
	BytesRecv atomic.Uint64

	// BufferHitCount indicates the number of reads served by the ring buffer alone.
	BufferHitCount atomic.Uint64
	// BlockingReadCount indicates the number of reads that fell through to
	// the blocking receive.
	BlockingReadCount atomic.Uint64
	// ShortReadCount indicates the number of reads returning fewer bytes than requested.
	ShortReadCount atomic.Uint64

	// LineCount indicates the number of terminated lines returned by ReadLine.
	LineCount atomic.Uint64
	// PushbackCount indicates the number of times ReadLine held a byte back.
	PushbackCount atomic.Uint64
}

func (m *ConnectionMetrics) incConnectCount() {
	m.ConnectCount.Add(1)
}

func (m *ConnectionMetrics) incConnectFailCount() {
	m.ConnectFailCount.Add(1)
}

func (m *ConnectionMetrics) addBytesSent(n int) {
	if n > 0 {
		m.BytesSent.Add(uint64(n))
	}
}

func (m *ConnectionMetrics) addBytesRecv(n int) {
	if n > 0 {
		m.BytesRecv.Add(uint64(n))
	}
}

func (m *ConnectionMetrics) incBufferHitCount() {
	m.BufferHitCount.Add(1)
}

func (m *ConnectionMetrics) incBlockingReadCount() {
	m.BlockingReadCount.Add(1)
}

func (m *ConnectionMetrics) incShortReadCount() {
	m.ShortReadCount.Add(1)
}

func (m *ConnectionMetrics) incLineCount() {
	m.LineCount.Add(1)
}

func (m *ConnectionMetrics) incPushbackCount() {
	m.PushbackCount.Add(1)
}
