package service

import (
	"sort"
	"time"

	"participation-service/internal/domain"
	"participation-service/internal/dto"
)

// historyDateLayout is the grouping key and label of history groups
const historyDateLayout = "Monday, January 2, 2006"

// Clock returns the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

// SessionStatusAt derives a session's agenda status
func SessionStatusAt(now, startAt time.Time, hasParticipation bool) domain.SessionStatus {
	switch {
	case now.Before(startAt):
		return domain.SessionNotStarted
	case hasParticipation:
		return domain.SessionCompleted
	default:
		return domain.SessionPending
	}
}

// DayBounds returns local midnight of t's day and of the following day in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// WeekBounds returns the first instant (Sunday 00:00) and the last millisecond
// (Saturday 23:59:59.999) of the week offset weeks away from now's week
func WeekBounds(now time.Time, offset int, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	y, m, d := local.Date()
	first := d - int(local.Weekday()) + offset*7

	start := time.Date(y, m, first, 0, 0, 0, 0, loc)
	end := time.Date(y, m, first+6, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// StreakSinceLastParticipation scans sessions ordered newest first and returns how many
// came before the first one the user participated in, along with that participation.
// When none qualifies the count is len(sessions) and the participation is nil.
func StreakSinceLastParticipation(sessions []domain.CourseSession) (int, *domain.Participation) {
	for i := range sessions {
		if p := sessions[i].UserParticipation(); p != nil && p.Participated {
			return i, p
		}
	}
	return len(sessions), nil
}

// TrackingStatusFor maps a streak length to a tracking status
func TrackingStatusFor(sessionsSince int) domain.TrackingStatus {
	switch {
	case sessionsSince <= 0:
		return domain.TrackingExcellent
	case sessionsSince == 1:
		return domain.TrackingGood
	case sessionsSince == 2:
		return domain.TrackingAttention
	default:
		return domain.TrackingCritical
	}
}

// SortTracking orders entries by status priority, then by longer streaks first
func SortTracking(entries []dto.CourseTrackingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Status.Priority(), entries[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		return entries[i].SessionsSinceLastParticipation > entries[j].SessionsSinceLastParticipation
	})
}

// Percentage returns round(100*part/total) with halves rounded up, or 0 when total is 0
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// lastQuality reports the quality of the last participation; a zero rating reads as absent
func lastQuality(p *domain.Participation) *int {
	if p == nil || p.Quality == 0 {
		return nil
	}
	q := p.Quality
	return &q
}

// lastParticipationDate is when the last participation was recorded
func lastParticipationDate(p *domain.Participation) *time.Time {
	if p == nil {
		return nil
	}
	t := p.CreatedAt
	return &t
}

// GroupByDate splits views ordered by start time into per-date groups, keeping order.
// Dates are labelled in loc.
func GroupByDate(views []dto.SessionView, loc *time.Location) []dto.HistoryGroup {
	groups := make([]dto.HistoryGroup, 0)
	index := make(map[string]int)

	for _, v := range views {
		key := v.StartAt.In(loc).Format(historyDateLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dto.HistoryGroup{Date: key, Sessions: make([]dto.SessionView, 0, 1)})
		}
		groups[i].Sessions = append(groups[i].Sessions, v)
	}
	return groups
}

// trackingEntry builds a course's tracking entry from its past sessions, newest first
func trackingEntry(course *domain.Course) dto.CourseTrackingEntry {
	entry := dto.CourseTrackingEntry{
		CourseID:   course.ID,
		CourseName: course.Name,
		Theme:      domain.ThemeForCourse(course.Name),
	}

	if len(course.Sessions) == 0 {
		entry.Status = domain.TrackingGood
		return entry
	}

	since, last := StreakSinceLastParticipation(course.Sessions)
	entry.SessionsSinceLastParticipation = since
	entry.Status = TrackingStatusFor(since)
	entry.LastParticipationDate = lastParticipationDate(last)
	entry.LastQuality = lastQuality(last)
	return entry
}

// courseStatistics builds a course's statistics from its past sessions, newest first
func courseStatistics(course *domain.Course) dto.CourseStatistics {
	stats := dto.CourseStatistics{
		CourseID:            course.ID,
		CourseName:          course.Name,
		Theme:               domain.ThemeForCourse(course.Name),
		TotalSessionsPassed: len(course.Sessions),
		SessionDetails:      make([]dto.SessionDetail, 0, len(course.Sessions)),
	}

	for i := range course.Sessions {
		s := &course.Sessions[i]
		detail := dto.SessionDetail{
			SessionID: s.ID,
			StartAt:   s.StartAt,
			Case:      s.Case,
		}
		if p := s.UserParticipation(); p != nil {
			q := p.Quality
			detail.Participated = p.Participated
			detail.Quality = &q
			detail.Note = p.Note
			if p.Participated {
				stats.ParticipatedSessions++
			}
		}
		stats.SessionDetails = append(stats.SessionDetails, detail)
	}

	stats.ParticipationPercentage = Percentage(stats.ParticipatedSessions, stats.TotalSessionsPassed)

	since, last := StreakSinceLastParticipation(course.Sessions)
	stats.SessionsSinceLastParticipation = since
	stats.LastParticipationDate = lastParticipationDate(last)
	if last != nil {
		q := last.Quality
		stats.LastQuality = &q
	}
	return stats
}
