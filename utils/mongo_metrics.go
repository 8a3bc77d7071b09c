package utils

import (
	"sync/atomic"
)

// MongoMetrics holds connection pool counters updated by the pool monitor.
type MongoMetrics struct {
	ActiveConnections  int64 `json:"activeConnections"`
	CreatedConnections int64 `json:"createdConnections"`
	ClosedConnections  int64 `json:"closedConnections"`
}

var mongoMetrics MongoMetrics

func IncrementActiveConnections() {
	atomic.AddInt64(&mongoMetrics.ActiveConnections, 1)
}

func DecrementActiveConnections() {
	atomic.AddInt64(&mongoMetrics.ActiveConnections, -1)
}

func IncrementCreatedConnections() {
	atomic.AddInt64(&mongoMetrics.CreatedConnections, 1)
}

func IncrementClosedConnections() {
	atomic.AddInt64(&mongoMetrics.ClosedConnections, 1)
}

func GetMongoMetrics() MongoMetrics {
	return MongoMetrics{
		ActiveConnections:  atomic.LoadInt64(&mongoMetrics.ActiveConnections),
		CreatedConnections: atomic.LoadInt64(&mongoMetrics.CreatedConnections),
		ClosedConnections:  atomic.LoadInt64(&mongoMetrics.ClosedConnections),
	}
}
