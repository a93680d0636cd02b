package app

import "time"

const poolReleaseTimeout = 30 * time.Second

// Shutdown releases the worker pool. It is safe on a partially built Application.
func (a *Application) Shutdown() {
	if a.Pool != nil {
		a.Pool.Release(poolReleaseTimeout)
	}
}
