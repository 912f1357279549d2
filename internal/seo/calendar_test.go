package seo_test

import (
	"seodash/internal/seo"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d, hour int) time.Time {
	return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
}

func calendarFixture() []seo.ContentItem {
	return []seo.ContentItem{
		{ID: "c1", Title: "Link Building Guide", Status: seo.ContentPublished, Channel: "Blog", Author: "Dana", PublishAt: day(2, 9), WordCount: 2400, Traffic: 900, Tags: []string{"links", "guide"}},
		{ID: "c2", Title: "Core Web Vitals", Status: seo.ContentScheduled, Channel: "blog", Author: "Sam", PublishAt: day(5, 14), WordCount: 1200, Traffic: 0, Tags: []string{"technical"}},
		{ID: "c3", Title: "April Newsletter", Status: seo.ContentDraft, Channel: "Email", Author: "Dana", PublishAt: day(5, 8), WordCount: 600, Traffic: 0},
		{ID: "c4", Title: "anchor text basics", Status: seo.ContentPublished, Channel: "Blog", Author: "Lee", PublishAt: day(2, 9), WordCount: 1200, Traffic: 300, Tags: []string{"links"}},
	}
}

func ids(items []seo.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilterCalendar(t *testing.T) {
	items := calendarFixture()

	tests := []struct {
		name   string
		filter seo.CalendarFilter
		want   []string
	}{
		{"no filter", seo.CalendarFilter{}, []string{"c1", "c2", "c3", "c4"}},
		{"status", seo.CalendarFilter{Status: seo.ContentPublished}, []string{"c1", "c4"}},
		{"channel ignores case", seo.CalendarFilter{Channel: "BLOG"}, []string{"c1", "c2", "c4"}},
		{"all tags required", seo.CalendarFilter{Tags: []string{"links", "guide"}}, []string{"c1"}},
		{"query matches title", seo.CalendarFilter{Query: "VITALS"}, []string{"c2"}},
		{"query matches author", seo.CalendarFilter{Query: "dana"}, []string{"c1", "c3"}},
		{"query matches tag", seo.CalendarFilter{Query: "techn"}, []string{"c2"}},
		{"from inclusive", seo.CalendarFilter{From: day(5, 8)}, []string{"c2", "c3"}},
		{"to exclusive", seo.CalendarFilter{To: day(5, 8)}, []string{"c1", "c4"}},
		{"combined", seo.CalendarFilter{Channel: "blog", Status: seo.ContentPublished, Query: "anchor"}, []string{"c4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(seo.FilterCalendar(items, tt.filter)))
		})
	}

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, seo.FilterCalendar(items, seo.CalendarFilter{Query: "nothing"}))
	})
}

func TestSortCalendar(t *testing.T) {
	items := calendarFixture()

	tests := []struct {
		name string
		by   seo.CalendarSortField
		desc bool
		want []string
	}{
		{"default is publish date", "", false, []string{"c1", "c4", "c3", "c2"}},
		{"publish date descending", seo.SortByPublishAt, true, []string{"c2", "c3", "c1", "c4"}},
		{"title ignores case", seo.SortByTitle, false, []string{"c4", "c3", "c2", "c1"}},
		{"word count ties broken by id", seo.SortByWordCount, false, []string{"c3", "c2", "c4", "c1"}},
		{"word count descending keeps id tiebreak", seo.SortByWordCount, true, []string{"c1", "c2", "c4", "c3"}},
		{"traffic", seo.SortByTraffic, true, []string{"c1", "c4", "c2", "c3"}},
		{"status", seo.SortByStatus, false, []string{"c3", "c1", "c4", "c2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(seo.SortCalendar(items, tt.by, tt.desc)))
		})
	}

	t.Run("input is not modified", func(t *testing.T) {
		seo.SortCalendar(items, seo.SortByTitle, false)
		assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, ids(items))
	})
}

func TestGroupCalendar(t *testing.T) {
	items := calendarFixture()

	t.Run("by day", func(t *testing.T) {
		groups := seo.GroupCalendar(items, seo.GroupByDay, time.UTC)

		assert.Len(t, groups, 2)
		assert.Equal(t, "2026-03-02", groups[0].Key)
		assert.Equal(t, []string{"c1", "c4"}, ids(groups[0].Items))
		assert.Equal(t, "2026-03-05", groups[1].Key)
		assert.Equal(t, []string{"c2", "c3"}, ids(groups[1].Items))
	})

	t.Run("day uses location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		groups := seo.GroupCalendar(items[1:2], seo.GroupByDay, tokyo)

		assert.Equal(t, "2026-03-05", groups[0].Key)

		late := seo.ContentItem{ID: "x", PublishAt: day(5, 20)}
		groups = seo.GroupCalendar([]seo.ContentItem{late}, seo.GroupByDay, tokyo)
		assert.Equal(t, "2026-03-06", groups[0].Key)
	})

	t.Run("unscheduled", func(t *testing.T) {
		groups := seo.GroupCalendar([]seo.ContentItem{{ID: "x"}}, seo.GroupByDay, nil)

		assert.Equal(t, "unscheduled", groups[0].Key)
	})

	t.Run("by channel folds case", func(t *testing.T) {
		groups := seo.GroupCalendar(items, seo.GroupByChannel, time.UTC)

		assert.Len(t, groups, 2)
		assert.Equal(t, "blog", groups[0].Key)
		assert.Equal(t, []string{"c1", "c2", "c4"}, ids(groups[0].Items))
		assert.Equal(t, "email", groups[1].Key)
	})

	t.Run("by status", func(t *testing.T) {
		groups := seo.GroupCalendar(items, seo.GroupByStatus, time.UTC)

		keys := make([]string, len(groups))
		for i, g := range groups {
			keys[i] = g.Key
		}
		assert.Equal(t, []string{"draft", "published", "scheduled"}, keys)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, seo.GroupCalendar(nil, seo.GroupByDay, time.UTC))
	})
}

func TestCalendarMetrics(t *testing.T) {
	stats := seo.CalendarMetrics(calendarFixture())

	assert.Equal(t, seo.CalendarStats{
		Total:        4,
		Published:    2,
		Scheduled:    1,
		Drafts:       1,
		TotalWords:   5400,
		AvgWords:     1350,
		TotalTraffic: 1200,
	}, stats)

	assert.Equal(t, seo.CalendarStats{}, seo.CalendarMetrics(nil))
}
