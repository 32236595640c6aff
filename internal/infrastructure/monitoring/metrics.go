package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	LoansIssuedTotal  prometheus.Counter
	RepaymentsTotal   *prometheus.CounterVec
	OverdueAmount     *prometheus.GaugeVec
	LoanedAmount      *prometheus.GaugeVec
	SnapshotRunsTotal *prometheus.CounterVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_ledger_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		LoansIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_ledger_loans_issued_total",
				Help: "Total number of loans successfully issued.",
			},
		),
		RepaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_repayments_total",
				Help: "Total number of repayment attempts by outcome.",
			},
			[]string{"status"},
		),
		OverdueAmount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loan_ledger_overdue_amount",
				Help: "Outstanding balance of overdue loans per owner at the last snapshot.",
			},
			[]string{"owner_id"},
		),
		LoanedAmount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loan_ledger_loaned_amount",
				Help: "Total amount loaned per owner at the last snapshot.",
			},
			[]string{"owner_id"},
		),
		SnapshotRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_overdue_snapshot_runs_total",
				Help: "Overdue snapshot job runs by outcome.",
			},
			[]string{"status"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordLoanIssued() {
	Business.LoansIssuedTotal.Inc()
}

func RecordRepayment(status string) {
	Business.RepaymentsTotal.WithLabelValues(status).Inc()
}

func SetOwnerSnapshot(ownerID string, loaned, overdue float64) {
	Business.LoanedAmount.WithLabelValues(ownerID).Set(loaned)
	Business.OverdueAmount.WithLabelValues(ownerID).Set(overdue)
}

func RecordSnapshotRun(status string) {
	Business.SnapshotRunsTotal.WithLabelValues(status).Inc()
}
