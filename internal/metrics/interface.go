package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesSimulated()
	AddGoals(count int)
	IncInjuries()
	IncCardsIssued()
	ObserveSimulationDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(seconds float64)
}

// MetricsStore persists lifetime counters across restarts, next to the
// in-process Prometheus metrics.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
