package seo

import (
	"net/url"
	"seodash/internal/store"
	"slices"
	"strings"
)

// UserCounts splits the cached page of users by activity. The counts cover
// the loaded page only; the server total is in the store's pagination.
func UserCounts(users []User) (active, inactive int) {
	active = store.CountWhere(users, func(u User) bool { return u.Active })
	return active, len(users) - active
}

type Movement struct {
	Improved  int
	Declined  int
	Unchanged int
	New       int
}

func KeywordMovement(keywords []Keyword) Movement {
	var m Movement
	for _, k := range keywords {
		switch {
		case k.PreviousPosition == 0 && k.Position > 0:
			m.New++
		case k.PreviousPosition > 0 && k.Position == 0:
			// Dropped out of the ranking.
			m.Declined++
		case k.Change() > 0:
			m.Improved++
		case k.Change() < 0:
			m.Declined++
		default:
			m.Unchanged++
		}
	}
	return m
}

// TopKeywords returns up to n ranked keywords, best position first.
// Unranked keywords (position 0) are excluded.
func TopKeywords(keywords []Keyword, n int) []Keyword {
	ranked, _ := store.Partition(keywords, func(k Keyword) bool { return k.Position > 0 })
	slices.SortStableFunc(ranked, func(a, b Keyword) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return strings.Compare(a.ID, b.ID)
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type BacklinkStats struct {
	Total           int
	DoFollow        int
	NoFollow        int
	AvgDomainRating float64
	Domains         int
}

func BacklinkSummary(backlinks []Backlink) BacklinkStats {
	s := BacklinkStats{Total: len(backlinks)}
	if len(backlinks) == 0 {
		return s
	}

	domains := make(map[string]bool)
	sum := 0
	for _, b := range backlinks {
		if b.DoFollow {
			s.DoFollow++
		}
		sum += b.DomainRating
		domains[hostOf(b.SourceURL)] = true
	}
	s.NoFollow = s.Total - s.DoFollow
	s.AvgDomainRating = float64(sum) / float64(s.Total)
	s.Domains = len(domains)
	return s
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// AuditHealth is the mean score of completed audits on the cached page.
// ok is false when none have completed.
func AuditHealth(audits []Audit) (score float64, ok bool) {
	done, _ := store.Partition(audits, func(a Audit) bool { return a.Status == AuditCompleted })
	if len(done) == 0 {
		return 0, false
	}
	sum := 0
	for _, a := range done {
		sum += a.Score
	}
	return float64(sum) / float64(len(done)), true
}
