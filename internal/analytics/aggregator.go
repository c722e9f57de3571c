package analytics

import (
	"slices"
	"sort"
	"time"

	"github.com/eleven-am/chat-analytics/internal/chat"
)

const (
	HoursPerDay     = 24
	DefaultMaxDates = 7
	DateLayout      = "2006-01-02"
)

// Options fixes the calendar used for bucketing. A nil Location means UTC;
// the process timezone is never consulted.
type Options struct {
	Location *time.Location
	MaxDates int
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) maxDates() int {
	if o.MaxDates <= 0 {
		return DefaultMaxDates
	}
	return o.MaxDates
}

// Aggregate computes the global summary from raw sessions, messages and
// snapshots. It does no I/O and never fails; the same input always yields
// the same output.
func Aggregate(in Input, opts Options) Summary {
	loc := opts.location()

	summary := Summary{
		TotalSessions:      int64(len(in.Sessions)),
		TotalMessages:      int64(len(in.Messages)),
		AvgSessionDuration: averageDuration(in.Snapshots),
		MessagesByHour:     messagesByHour(in.Messages, loc),
		SessionsByDate:     sessionsByDate(in.Sessions, loc, opts.maxDates()),
	}

	total, count := responseTimes(in.Messages)
	summary.ResponseCount = count
	if count > 0 {
		summary.AvgResponseTime = total / float64(count)
	}

	return summary
}

func averageDuration(snapshots []SessionAnalytics) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	var sum int64
	for _, s := range snapshots {
		sum += s.SessionDuration
	}
	return float64(sum) / float64(len(snapshots))
}

// responseTimes pairs each assistant message with the oldest unanswered
// user message of the same session and returns the summed delay in
// seconds together with the number of pairs. Pairs with a negative delay
// are dropped, as are assistant messages with nothing to answer.
func responseTimes(messages []chat.Message) (total float64, count int64) {
	for _, conversation := range groupBySession(messages) {
		slices.SortStableFunc(conversation, func(a, b chat.Message) int {
			return a.Timestamp.Compare(b.Timestamp)
		})

		var pending []time.Time
		for _, m := range conversation {
			switch m.Role {
			case chat.RoleUser:
				pending = append(pending, m.Timestamp)
			case chat.RoleAssistant:
				if len(pending) == 0 {
					continue
				}
				asked := pending[0]
				pending = pending[1:]

				delay := m.Timestamp.Sub(asked).Seconds()
				if delay < 0 {
					continue
				}
				total += delay
				count++
			}
		}
	}
	return total, count
}

// groupBySession splits messages per session, keeping sessions in order of
// first appearance and messages in input order.
func groupBySession(messages []chat.Message) [][]chat.Message {
	index := make(map[string]int)
	var groups [][]chat.Message
	for _, m := range messages {
		i, ok := index[m.SessionID]
		if !ok {
			i = len(groups)
			index[m.SessionID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], m)
	}
	return groups
}

func messagesByHour(messages []chat.Message, loc *time.Location) []HourCount {
	buckets := make([]HourCount, HoursPerDay)
	for hour := range buckets {
		buckets[hour].Hour = hour
	}
	for _, m := range messages {
		buckets[m.Timestamp.In(loc).Hour()].Count++
	}
	return buckets
}

// sessionsByDate counts sessions per creation date and keeps the latest
// maxDates dates that have at least one session. Gaps are not filled.
func sessionsByDate(sessions []chat.Session, loc *time.Location, maxDates int) []DateCount {
	counts := make(map[string]int64)
	for _, s := range sessions {
		counts[s.CreatedAt.In(loc).Format(DateLayout)]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > maxDates {
		dates = dates[len(dates)-maxDates:]
	}

	series := make([]DateCount, len(dates))
	for i, date := range dates {
		series[i] = DateCount{Date: date, Count: counts[date]}
	}
	return series
}
