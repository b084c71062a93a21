// Package ports declares the interfaces the application core needs from the
// outside world: repositories, the unit of work, the clock, event publishing
// and metrics. Adapters under internal/adapters implement them.
package ports
