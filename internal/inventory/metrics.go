package inventory

import "github.com/prometheus/client_golang/prometheus"

const (
	labelOp     = "op"
	labelResult = "result"

	resultOK = "ok"
)

type Metrics struct {
	Products       prometheus.Gauge
	LowStockEvents prometheus.Counter
	UnitsSold      prometheus.Counter
	Ops            *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_products",
			Help: "Live products in the record store",
		}),
		LowStockEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_low_stock_events_total",
			Help: "Entries appended to the low-stock log",
		}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_units_sold_total",
			Help: "Units sold through buy and checkout",
		}),
		Ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_operations_total",
				Help: "Stock operations by outcome",
			},
			[]string{labelOp, labelResult},
		),
	}

	reg.MustRegister(m.Products, m.LowStockEvents, m.UnitsSold, m.Ops)
	return m
}

// The methods below accept a nil receiver so an Inventory can run without
// metrics.

func (m *Metrics) op(name string, err error) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = err.Error()
	}
	m.Ops.WithLabelValues(name, result).Inc()
}

func (m *Metrics) setProducts(n int) {
	if m == nil {
		return
	}
	m.Products.Set(float64(n))
}

func (m *Metrics) lowStock() {
	if m == nil {
		return
	}
	m.LowStockEvents.Inc()
}

func (m *Metrics) sold(units int) {
	if m == nil {
		return
	}
	m.UnitsSold.Add(float64(units))
}
