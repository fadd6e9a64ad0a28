package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
)

var (
	ordersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_recorded_total",
			Help: "Total number of orders persisted",
		},
		[]string{"payment_method"},
	)

	salesAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_sales_amount_total",
			Help: "Sum of recorded order totals",
		},
	)
)

func observeRecordedOrder(order *models.Order) {
	ordersRecorded.WithLabelValues(string(order.PaymentMethod)).Inc()
	amount, _ := order.Total.Float64()
	salesAmount.Add(amount)
}
