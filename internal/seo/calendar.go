package seo

import (
	"sort"
	"strings"
	"time"
)

type CalendarFilter struct {
	Status  ContentStatus
	Channel string
	Query   string
	Tags    []string
	From    time.Time
	To      time.Time
}

type CalendarSortField string

const (
	SortByPublishAt CalendarSortField = "publish_at"
	SortByTitle     CalendarSortField = "title"
	SortByStatus    CalendarSortField = "status"
	SortByTraffic   CalendarSortField = "traffic"
	SortByWordCount CalendarSortField = "word_count"
)

type CalendarGrouping string

const (
	GroupByDay     CalendarGrouping = "day"
	GroupByStatus  CalendarGrouping = "status"
	GroupByChannel CalendarGrouping = "channel"
)

func FilterCalendar(items []ContentItem, f CalendarFilter) []ContentItem {
	query := strings.ToLower(f.Query)
	var results []ContentItem
	for _, it := range items {
		if matchesCalendarFilter(it, f, query) {
			results = append(results, it)
		}
	}
	return results
}

func matchesCalendarFilter(it ContentItem, f CalendarFilter, query string) bool {
	if f.Status != "" && it.Status != f.Status {
		return false
	}

	if f.Channel != "" && !strings.EqualFold(it.Channel, f.Channel) {
		return false
	}

	for _, tag := range f.Tags {
		if !it.HasTag(tag) {
			return false
		}
	}

	// From is inclusive, To exclusive.
	if !f.From.IsZero() && it.PublishAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !it.PublishAt.Before(f.To) {
		return false
	}

	if query != "" && !matchesContentQuery(it, query) {
		return false
	}

	return true
}

func matchesContentQuery(it ContentItem, query string) bool {
	if strings.Contains(strings.ToLower(it.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Author), query) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// SortCalendar returns a sorted copy of items.
func SortCalendar(items []ContentItem, by CalendarSortField, descending bool) []ContentItem {
	if by == "" {
		by = SortByPublishAt
	}

	sorted := make([]ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareContent(sorted[i], sorted[j], by, descending)
	})
	return sorted
}

func compareContent(a, b ContentItem, by CalendarSortField, descending bool) bool {
	var less, equal bool

	switch by {
	case SortByTitle:
		t1, t2 := strings.ToLower(a.Title), strings.ToLower(b.Title)
		less, equal = t1 < t2, t1 == t2
	case SortByStatus:
		less, equal = a.Status < b.Status, a.Status == b.Status
	case SortByTraffic:
		less, equal = a.Traffic < b.Traffic, a.Traffic == b.Traffic
	case SortByWordCount:
		less, equal = a.WordCount < b.WordCount, a.WordCount == b.WordCount
	default:
		less = a.PublishAt.Before(b.PublishAt)
		equal = a.PublishAt.Equal(b.PublishAt)
	}

	// Tiebreaker: ID keeps the order deterministic in both directions.
	if equal {
		return a.ID < b.ID
	}
	if descending {
		return !less
	}
	return less
}

type CalendarGroup struct {
	Key   string
	Items []ContentItem
}

// GroupCalendar buckets items by key. Groups are ordered by key; items keep
// their input order within a group. Day keys are YYYY-MM-DD in loc.
func GroupCalendar(items []ContentItem, by CalendarGrouping, loc *time.Location) []CalendarGroup {
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[string]int)
	var groups []CalendarGroup
	for _, it := range items {
		key := groupKey(it, by, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CalendarGroup{Key: key})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func groupKey(it ContentItem, by CalendarGrouping, loc *time.Location) string {
	switch by {
	case GroupByStatus:
		return string(it.Status)
	case GroupByChannel:
		return strings.ToLower(it.Channel)
	default:
		if it.PublishAt.IsZero() {
			return "unscheduled"
		}
		return it.PublishAt.In(loc).Format(time.DateOnly)
	}
}

type CalendarStats struct {
	Total        int
	Published    int
	Scheduled    int
	Drafts       int
	TotalWords   int
	AvgWords     float64
	TotalTraffic int
}

func CalendarMetrics(items []ContentItem) CalendarStats {
	s := CalendarStats{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case ContentPublished:
			s.Published++
		case ContentScheduled:
			s.Scheduled++
		case ContentDraft:
			s.Drafts++
		}
		s.TotalWords += it.WordCount
		s.TotalTraffic += it.Traffic
	}
	if s.Total > 0 {
		s.AvgWords = float64(s.TotalWords) / float64(s.Total)
	}
	return s
}
