package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the card service.
type Metrics struct {
	CardsCreated       prometheus.Counter
	CardsDeleted       prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
	TransfersCompleted prometheus.Counter
	TransfersRejected  *prometheus.CounterVec
	TransferredMinor   prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		CardsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cardledger_cards_created_total",
			Help: "Total number of cards created.",
		}),
		CardsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cardledger_cards_deleted_total",
			Help: "Total number of cards deleted.",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cardledger_status_transitions_total",
			Help: "Card lifecycle transitions by target status.",
		}, []string{"target"}),
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cardledger_transfers_completed_total",
			Help: "Total number of committed transfers.",
		}),
		TransfersRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cardledger_transfers_rejected_total",
			Help: "Rejected transfers by failure code.",
		}, []string{"code"}),
		TransferredMinor: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cardledger_transferred_minor_units_total",
			Help: "Total amount moved by committed transfers, in minor units.",
		}),
	}
}
