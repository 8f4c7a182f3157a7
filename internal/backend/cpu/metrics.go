package cpu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	allocTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axon_cpu_alloc_total",
		Help: "Total number of host buffer allocations",
	})

	mapTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axon_cpu_map_total",
		Help: "Total number of elementwise map kernel invocations",
	})

	applyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axon_cpu_apply_total",
		Help: "Total number of elementwise binary kernel invocations",
	})

	reduceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axon_cpu_reduce_total",
		Help: "Total number of reduction kernel invocations",
	})

	linalgTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axon_cpu_linalg_total",
		Help: "Total number of linear algebra kernel invocations",
	})
)
