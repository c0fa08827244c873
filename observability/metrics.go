// Package observability exports ledger activity as Prometheus metrics.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/reward"
	"github.com/hdriqi/paras-backend/txlog"
)

// MetricsHook records ledger events on a Prometheus registerer.
// Register it on a Ledger:
//
//	l := ledger.New(st, ledger.WithHook(observability.NewMetricsHook(prometheus.DefaultRegisterer)))
type MetricsHook struct {
	transfers     *prometheus.CounterVec
	tokensMoved   *prometheus.CounterVec
	mints         prometheus.Counter
	burns         prometheus.Counter
	pointsGranted *prometheus.CounterVec
	pointsSlashed *prometheus.CounterVec
	disbursements prometheus.Counter
	paidAccounts  prometheus.Histogram
	batchFailures *prometheus.CounterVec
}

// NewMetricsHook registers the ledger metric set on reg. Registering
// twice on the same registerer panics, as promauto always does.
func NewMetricsHook(reg prometheus.Registerer) *MetricsHook {
	factory := promauto.With(reg)
	return &MetricsHook{
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Total number of committed transfers, labelled by tag kind.",
		}, []string{"kind"}),
		tokensMoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_tokens_moved_total",
			Help: "Whole tokens moved by committed transfers, labelled by tag kind.",
		}, []string{"kind"}),
		mints: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_mints_total",
			Help: "Total number of supply mints.",
		}),
		burns: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_burns_total",
			Help: "Total number of supply burns.",
		}),
		pointsGranted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_activity_points_granted_total",
			Help: "Activity points granted, labelled by action.",
		}, []string{"action"}),
		pointsSlashed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_activity_points_slashed_total",
			Help: "Activity points slashed, labelled by action.",
		}, []string{"action"}),
		disbursements: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_reward_disbursements_total",
			Help: "Total number of completed epoch disbursements.",
		}),
		paidAccounts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_reward_paid_accounts",
			Help:    "Accounts paid per epoch disbursement.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		batchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_batch_failures_total",
			Help: "Distribution fan-outs that could not fully complete, labelled by operation.",
		}, []string{"op"}),
	}
}

func (m *MetricsHook) Name() string { return "prometheus-metrics" }

func (m *MetricsHook) OnTransfer(_ context.Context, e *txlog.Entry) error {
	kind := "user"
	if k, _, ok := txlog.ParseSystemTag(e.Tag); ok {
		kind = k
	}
	m.transfers.WithLabelValues(kind).Inc()
	m.tokensMoved.WithLabelValues(kind).Add(e.Value.Float64())
	return nil
}

func (m *MetricsHook) OnMint(_ context.Context, e *txlog.Entry) error {
	m.mints.Inc()
	return nil
}

func (m *MetricsHook) OnBurn(_ context.Context, e *txlog.Entry) error {
	m.burns.Inc()
	return nil
}

func (m *MetricsHook) OnPointsChanged(_ context.Context, _ string, action activity.Action, dir activity.Direction, point int) error {
	if dir == activity.DirectionSlash {
		m.pointsSlashed.WithLabelValues(string(action)).Add(float64(point))
		return nil
	}
	m.pointsGranted.WithLabelValues(string(action)).Add(float64(point))
	return nil
}

func (m *MetricsHook) OnDisbursed(_ context.Context, _ string, payouts []reward.Payout) error {
	m.disbursements.Inc()
	m.paidAccounts.Observe(float64(len(payouts)))
	return nil
}

func (m *MetricsHook) OnBatchFailed(_ context.Context, op string, _ error) error {
	m.batchFailures.WithLabelValues(op).Inc()
	return nil
}
