// Package metrics はブローカーのPrometheusメトリクスを提供する。
// すべてのメソッドはnilレシーバで何もしない。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glasses_broker"

// 接続種別ラベル
const (
	SourceDevice = "device"
	SourceTPA    = "tpa"
)

// Metrics はブローカーのコレクタ一式。
type Metrics struct {
	registry *prometheus.Registry

	connections     *prometheus.GaugeVec
	messages        *prometheus.CounterVec
	protocolErrors  *prometheus.CounterVec
	routed          *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	audioBytes      prometheus.Counter
	appStarts       *prometheus.CounterVec
	captureOutcomes *prometheus.CounterVec
	staleTPAs       prometheus.Gauge
}

// New は専用レジストリにコレクタを登録したMetricsを生成する。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connections: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open websocket connections by source.",
		}, []string{"source"}),
		messages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Inbound websocket messages by source and type.",
		}, []string{"source", "type"}),
		protocolErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Rejected inbound messages by source.",
		}, []string{"source"}),
		routed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_routed_total",
			Help:      "Device events delivered to TPAs by stream.",
		}, []string{"stream"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_fallbacks_total",
			Help:      "Device events handled by the system fallback by stream.",
		}, []string{"stream"}),
		audioBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_total",
			Help:      "Encoded audio bytes received from devices.",
		}),
		appStarts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "app_starts_total",
			Help:      "App start attempts by result.",
		}, []string{"result"}),
		captureOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capture_results_total",
			Help:      "Capture upload resolutions by outcome.",
		}, []string{"outcome"}),
		staleTPAs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tpa_servers_stale",
			Help:      "TPA server registrations currently flagged stale.",
		}),
	}
}

// Handler は/metrics用のHTTPハンドラを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry はコレクタを登録したレジストリを返す。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ConnectionOpened は接続数を増やす。
func (m *Metrics) ConnectionOpened(source string) {
	if m == nil {
		return
	}
	m.connections.WithLabelValues(source).Inc()
}

// ConnectionClosed は接続数を減らす。
func (m *Metrics) ConnectionClosed(source string) {
	if m == nil {
		return
	}
	m.connections.WithLabelValues(source).Dec()
}

// MessageReceived は受信メッセージを数える。
func (m *Metrics) MessageReceived(source, msgType string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(source, msgType).Inc()
}

// ProtocolError は拒否したメッセージを数える。
func (m *Metrics) ProtocolError(source string) {
	if m == nil {
		return
	}
	m.protocolErrors.WithLabelValues(source).Inc()
}

// EventRouted は配信したイベント数を加算する。
func (m *Metrics) EventRouted(stream string, deliveries int) {
	if m == nil || deliveries <= 0 {
		return
	}
	m.routed.WithLabelValues(stream).Add(float64(deliveries))
}

// FallbackFired はシステムフォールバックを数える。
func (m *Metrics) FallbackFired(stream string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(stream).Inc()
}

// AudioReceived は受信した音声バイト数を加算する。
func (m *Metrics) AudioReceived(bytes int) {
	if m == nil {
		return
	}
	m.audioBytes.Add(float64(bytes))
}

// AppStart はアプリ起動の結果を数える。
func (m *Metrics) AppStart(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.appStarts.WithLabelValues(result).Inc()
}

// CaptureOutcome はキャプチャ解決結果を数える。
func (m *Metrics) CaptureOutcome(outcome string) {
	if m == nil {
		return
	}
	m.captureOutcomes.WithLabelValues(outcome).Inc()
}

// SetStaleTPAs はstale登録数を設定する。
func (m *Metrics) SetStaleTPAs(n int) {
	if m == nil {
		return
	}
	m.staleTPAs.Set(float64(n))
}
