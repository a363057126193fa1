// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	syncRuns               *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	metric, err := m.responseTime.GetMetricWith(labels)
	if err != nil {
		return fmt.Errorf("failed to fetch response time metric: %w", err)
	}

	metric.Observe(value)
	return nil
}

func (m *Monitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	metric, err := m.dependencyAvailability.GetMetricWith(labels)
	if err != nil {
		return fmt.Errorf("failed to fetch dependency availability metric: %w", err)
	}

	metric.Set(value)
	return nil
}

func (m *Monitor) IncSyncRunCounter(connector, status string) {
	m.syncRuns.WithLabelValues(connector, status).Inc()
}

func (m *Monitor) registerMetrics() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "response_time_seconds",
			Help:      "Duration of HTTP requests.",
		},
		[]string{"route", "status"},
	)

	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "Availability of upstream dependencies, 1 for up and 0 for down.",
		},
		[]string{"component"},
	)

	m.syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total connector sync runs by outcome.",
		},
		[]string{"connector", "status"},
	)

	for _, collector := range []prometheus.Collector{m.responseTime, m.dependencyAvailability, m.syncRuns} {
		if err := prometheus.Register(collector); err != nil {
			m.logger.Errorf("failed to register metric: %v", err)
		}
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerMetrics()

	return m
}
