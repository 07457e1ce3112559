package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// queryTables are the tables this service queries. Anything else (migrations, driver
// catalog lookups) is folded into "other" to keep label cardinality fixed.
var queryTables = map[string]bool{
	"users":           true,
	"courses":         true,
	"course_sessions": true,
	"participations":  true,
}

func tableLabel(table string) string {
	table = strings.Trim(strings.ToLower(table), `"`+"`")
	if queryTables[table] {
		return table
	}
	return "other"
}

// UpdateDBStats updates database connection pool metrics. sql.DBStats wait figures are
// cumulative for the pool, so only the growth since the previous poll is added.
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.dbStatsMu.Lock()
		defer m.dbStatsMu.Unlock()

		waitCount := stats.WaitCount - m.lastWaitCount
		waitDuration := stats.WaitDuration - m.lastWaitDuration
		if waitCount < 0 || waitDuration < 0 {
			// pool was reopened
			waitCount, waitDuration = stats.WaitCount, stats.WaitDuration
		}
		m.DBConnectionWaitTotal.Add(float64(waitCount))
		m.DBConnectionWaitDuration.Add(waitDuration.Seconds())
		m.lastWaitCount = stats.WaitCount
		m.lastWaitDuration = stats.WaitDuration
	})
}

// RecordDBQuery records a statement's duration and failure by operation
// (select, insert, upsert, update, delete, raw) and table
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		table = tableLabel(table)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
