package container

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelPod       = "pod"
	labelContainer = "container"
)

// Metrics is the exported gauge set. Each collection cycle overwrites label
// cells in place and never deletes them, so a series keeps its last value
// until the process restarts even when its container is gone.
type Metrics struct {
	Total prometheus.Gauge
	Count *prometheus.GaugeVec

	State         *prometheus.GaugeVec
	Uptime        *prometheus.GaugeVec
	SystemNano    *prometheus.GaugeVec
	PIDs          *prometheus.GaugeVec
	AvgCPU        *prometheus.GaugeVec
	CPU           *prometheus.GaugeVec
	CPUNano       *prometheus.GaugeVec
	CPUSystemNano *prometheus.GaugeVec
	MemUsage      *prometheus.GaugeVec
	MemLimit      *prometheus.GaugeVec
	MemPerc       *prometheus.GaugeVec
	NetInput      *prometheus.GaugeVec
	NetOutput     *prometheus.GaugeVec
	BlockInput    *prometheus.GaugeVec
	BlockOutput   *prometheus.GaugeVec

	EngineUp       prometheus.Gauge
	ScrapeDuration prometheus.Gauge
	ScrapeErrors   prometheus.Counter
}

// NewMetrics registers the gauge set with reg and returns it.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	perContainer := func(name, help string) *prometheus.GaugeVec {
		return factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, []string{labelPod, labelContainer})
	}

	return &Metrics{
		Total: factory.NewGauge(prometheus.GaugeOpts{
			Name: "container_total",
			Help: "Total count of containers",
		}),
		Count: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "container_count",
			Help: "Count of containers",
		}, []string{labelPod}),

		State:         perContainer("container_state", "Container current state (-1=unknown,0=exited/stopped,1=running,2=created)"),
		Uptime:        perContainer("container_uptime", "Container uptime"),
		SystemNano:    perContainer("container_system_nano", "Container system nano"),
		PIDs:          perContainer("container_pids", "Count of running pids in container"),
		AvgCPU:        perContainer("container_avg_cpu", "Container Avg CPU usage"),
		CPU:           perContainer("container_cpu", "Container CPU usage"),
		CPUNano:       perContainer("container_cpu_nano", "Container CPU usage (nano)"),
		CPUSystemNano: perContainer("container_cpu_system_nano", "Container CPU usage (system nano)"),
		MemUsage:      perContainer("container_mem_usage", "Container memory usage (bytes)"),
		MemLimit:      perContainer("container_mem_limit", "Container memory limit"),
		MemPerc:       perContainer("container_mem_perc", "Container memory usage (percentage)"),
		NetInput:      perContainer("container_network_input", "Container network input"),
		NetOutput:     perContainer("container_network_output", "Container network output"),
		BlockInput:    perContainer("container_block_input", "Container block input"),
		BlockOutput:   perContainer("container_block_output", "Container block output"),

		EngineUp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "container_engine_up",
			Help: "Whether the last query to the container engine succeeded",
		}),
		ScrapeDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "container_scrape_duration_seconds",
			Help: "Duration of the last collection cycle",
		}),
		ScrapeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "container_scrape_errors_total",
			Help: "Total number of failed collection cycles",
		}),
	}
}
