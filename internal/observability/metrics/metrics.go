package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the ledger's application-level instruments.
type Metrics struct {
	ordersCreated  prometheus.Counter
	amountRaised   prometheus.Counter
	feesAccrued    prometheus.Counter
	withdrawals    prometheus.Counter
	feeWithdrawals prometheus.Counter
}

// New registers the ledger instruments on the given registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "derent_orders_created_total",
			Help: "Number of rental orders created.",
		}),
		amountRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "derent_amount_raised_total",
			Help: "Cumulative fee-adjusted amount raised across all orders, in token minor units.",
		}),
		feesAccrued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "derent_fees_accrued_total",
			Help: "Cumulative protocol fees accrued, in token minor units.",
		}),
		withdrawals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "derent_withdrawals_total",
			Help: "Number of owner withdrawals.",
		}),
		feeWithdrawals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "derent_fee_withdrawals_total",
			Help: "Number of admin fee withdrawals.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.ordersCreated,
		m.amountRaised,
		m.feesAccrued,
		m.withdrawals,
		m.feeWithdrawals,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RecordOrder(ownerCredit, feeAmount int64) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.amountRaised.Add(float64(ownerCredit))
	m.feesAccrued.Add(float64(feeAmount))
}

func (m *Metrics) RecordWithdrawal() {
	if m == nil {
		return
	}
	m.withdrawals.Inc()
}

func (m *Metrics) RecordFeeWithdrawal() {
	if m == nil {
		return
	}
	m.feeWithdrawals.Inc()
}
