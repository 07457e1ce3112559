package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

const startTimeKey = "metrics:start_time"

func before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func after(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		err := db.Error
		if err == gorm.ErrRecordNotFound {
			err = nil
		}
		op := operation
		if _, upsert := db.Statement.Clauses["ON CONFLICT"]; upsert && op == "insert" {
			op = "upsert"
		}
		recorder.RecordDBQuery(op, table, time.Since(startTime.(time.Time)), err)
	}
}

// RegisterMetricsCallbacks registers GORM callbacks for metrics collection
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("metrics:query_before", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:query_after", after(recorder, "select")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("metrics:create_before", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:create_after", after(recorder, "insert")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:update_before", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:update_after", after(recorder, "update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:delete_before", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:delete_after", after(recorder, "delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:raw_before", before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:raw_after", after(recorder, "raw"))
}

// StartDBStatsCollector polls connection pool stats until the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
