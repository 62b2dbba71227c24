// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス記録のインターフェース。
// ハンドラーとミドルウェアから利用する。
type Recorder interface {
	RecordLogin(role string)
	RecordLoginFailure(reason string)
	RecordLogout()
	RecordGuardDecision(outcome string)
	RecordVisitorDecision(status string)
	RecordBooking()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	logins           *prometheus.CounterVec
	loginFailures    *prometheus.CounterVec
	logouts          prometheus.Counter
	guardDecisions   *prometheus.CounterVec
	visitorDecisions *prometheus.CounterVec
	bookings         prometheus.Counter
	httpStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_login_total",
			Help: "ロール別のログイン成功数",
		}, []string{"role"}),
		loginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_login_failure_total",
			Help: "理由別のログイン失敗数",
		}, []string{"reason"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_logout_total",
			Help: "ログアウトの合計数",
		}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_guard_decision_total",
			Help: "ルートガードの判定結果別の件数",
		}, []string{"outcome"}),
		visitorDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_visitor_decision_total",
			Help: "来訪者の承認・却下の件数",
		}, []string{"status"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_facility_booking_total",
			Help: "施設予約の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.logins,
		c.loginFailures,
		c.logouts,
		c.guardDecisions,
		c.visitorDecisions,
		c.bookings,
		c.httpStatus,
	)

	return c
}

// RecordLogin はログイン成功を記録する。
func (c *Collector) RecordLogin(role string) {
	c.logins.WithLabelValues(role).Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailures.WithLabelValues(reason).Inc()
}

// RecordLogout はログアウトを記録する。
func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

// RecordGuardDecision はルートガードの判定結果を記録する。
func (c *Collector) RecordGuardDecision(outcome string) {
	c.guardDecisions.WithLabelValues(outcome).Inc()
}

// RecordVisitorDecision は来訪者への判定を記録する。
func (c *Collector) RecordVisitorDecision(status string) {
	c.visitorDecisions.WithLabelValues(status).Inc()
}

// RecordBooking は施設予約を記録する。
func (c *Collector) RecordBooking() {
	c.bookings.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Nop は何も記録しないRecorder。
type Nop struct{}

func (Nop) RecordLogin(string)           {}
func (Nop) RecordLoginFailure(string)    {}
func (Nop) RecordLogout()                {}
func (Nop) RecordGuardDecision(string)   {}
func (Nop) RecordVisitorDecision(string) {}
func (Nop) RecordBooking()               {}
func (Nop) RecordHTTPStatus(int)         {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
