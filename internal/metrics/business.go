package metrics

import "strconv"

// View names used as the view label of the cache metrics
const (
	ViewStatistics = "statistics"
	ViewTracking   = "tracking"
)

// RecordParticipation counts a write through the upsert path
func (m *Metrics) RecordParticipation(participated bool) {
	m.safeExecute("RecordParticipation", func() {
		m.ParticipationsRecordedTotal.WithLabelValues(strconv.FormatBool(participated)).Inc()
	})
}

// IncrementParticipationUpdated increments the update-by-id counter
func (m *Metrics) IncrementParticipationUpdated() {
	m.safeExecute("IncrementParticipationUpdated", func() {
		m.ParticipationsUpdatedTotal.Inc()
	})
}

// IncrementParticipationDeleted increments the delete counter
func (m *Metrics) IncrementParticipationDeleted() {
	m.safeExecute("IncrementParticipationDeleted", func() {
		m.ParticipationsDeletedTotal.Inc()
	})
}

// IncrementInvalidQuality counts a write rejected for its quality value
func (m *Metrics) IncrementInvalidQuality() {
	m.safeExecute("IncrementInvalidQuality", func() {
		m.InvalidQualityTotal.Inc()
	})
}

// RecordViewCache records a cache lookup for the given view
func (m *Metrics) RecordViewCache(view string, hit bool) {
	m.safeExecute("RecordViewCache", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.ViewCacheRequestsTotal.WithLabelValues(view, result).Inc()
	})
}

// SetCoursesTotal sets the courses gauge
func (m *Metrics) SetCoursesTotal(count int64) {
	m.safeExecute("SetCoursesTotal", func() {
		m.CoursesTotal.Set(float64(count))
	})
}

// SetSessionsTotal sets the sessions gauge
func (m *Metrics) SetSessionsTotal(count int64) {
	m.safeExecute("SetSessionsTotal", func() {
		m.SessionsTotal.Set(float64(count))
	})
}

// SetParticipationsTotal sets the stored participations gauge
func (m *Metrics) SetParticipationsTotal(count int64) {
	m.safeExecute("SetParticipationsTotal", func() {
		m.ParticipationsTotal.Set(float64(count))
	})
}
