package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec
	Deposits         prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// Pix key metrics
	PixKeysRegistered prometheus.Counter
	PixKeysRevoked    prometheus.Counter
	PixTransfers      prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_transfers_created_total",
			Help: "Total number of completed transfers",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gopix_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopix_transfer_errors_total",
				Help: "Total number of rejected transfers by reason",
			},
			[]string{"reason"},
		),
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_deposits_total",
			Help: "Total number of deposits",
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		PixKeysRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_pix_keys_registered_total",
			Help: "Total number of pix keys registered",
		}),
		PixKeysRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_pix_keys_revoked_total",
			Help: "Total number of pix keys revoked",
		}),
		PixTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gopix_pix_transfers_total",
			Help: "Total number of transfers addressed by alias",
		}),
	}
}
