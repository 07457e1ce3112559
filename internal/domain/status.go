package domain

// SessionStatus is the derived display state of a session in the caller's agenda.
// It is recomputed on every read and never stored.
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not-started"
	SessionPending    SessionStatus = "pending"
	SessionCompleted  SessionStatus = "completed"
)

// TrackingStatus classifies a course by how many sessions passed since the last participation
type TrackingStatus string

const (
	TrackingExcellent TrackingStatus = "excellent"
	TrackingGood      TrackingStatus = "good"
	TrackingAttention TrackingStatus = "attention"
	TrackingCritical  TrackingStatus = "critical"
)

// Priority orders statuses so the courses needing attention come first
func (s TrackingStatus) Priority() int {
	switch s {
	case TrackingCritical:
		return 0
	case TrackingAttention:
		return 1
	case TrackingGood:
		return 2
	case TrackingExcellent:
		return 3
	default:
		return 4
	}
}
