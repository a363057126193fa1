// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

var _ MonitorInterface = (*NoopMonitor)(nil)

// NoopMonitor drops all metrics. Meant for tests and one-shot commands that
// don't expose a metrics endpoint.
type NoopMonitor struct{}

func NewNoopMonitor() *NoopMonitor {
	return new(NoopMonitor)
}

func (m *NoopMonitor) GetService() string {
	return "oaa-sync"
}

func (m *NoopMonitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	return nil
}

func (m *NoopMonitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	return nil
}

func (m *NoopMonitor) IncSyncRunCounter(connector, status string) {}
