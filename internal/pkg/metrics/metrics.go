package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	checkIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coworkhub",
			Name:      "booking_check_ins_total",
			Help:      "Booking check-in attempts by outcome.",
		},
		[]string{"outcome"},
	)

	checkOuts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coworkhub",
			Name:      "booking_check_outs_total",
			Help:      "Booking check-out attempts by reconciliation branch.",
		},
		[]string{"branch"},
	)

	ordersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coworkhub",
			Name:      "cafe_orders_total",
			Help:      "Cafe orders placed.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(checkIns, checkOuts, ordersPlaced)
	})
}

func IncCheckIn(outcome string) {
	checkIns.WithLabelValues(outcome).Inc()
}

func IncCheckOut(branch string) {
	checkOuts.WithLabelValues(branch).Inc()
}

func IncOrderPlaced() {
	ordersPlaced.Inc()
}
