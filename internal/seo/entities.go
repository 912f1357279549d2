package seo

import (
	"slices"
	"time"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectArchived ProjectStatus = "archived"
)

var ValidProjectStatuses = []ProjectStatus{ProjectActive, ProjectPaused, ProjectArchived}

type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Domain    string        `json:"domain"`
	Status    ProjectStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p Project) EntityID() string { return p.ID }

type Keyword struct {
	ID               string `json:"id"`
	ProjectID        string `json:"projectId"`
	Phrase           string `json:"phrase"`
	Position         int    `json:"position"`
	PreviousPosition int    `json:"previousPosition"`
	Volume           int    `json:"volume"`
	Difficulty       int    `json:"difficulty"`
	URL              string `json:"url,omitempty"`
}

func (k Keyword) EntityID() string { return k.ID }

// Change is the rank movement since the previous check; positive is better.
// Keywords that were not ranked before report 0.
func (k Keyword) Change() int {
	if k.PreviousPosition == 0 || k.Position == 0 {
		return 0
	}
	return k.PreviousPosition - k.Position
}

type Backlink struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	SourceURL    string    `json:"sourceUrl"`
	TargetURL    string    `json:"targetUrl"`
	Anchor       string    `json:"anchor"`
	DomainRating int       `json:"domainRating"`
	DoFollow     bool      `json:"doFollow"`
	FirstSeen    time.Time `json:"firstSeen"`
}

func (b Backlink) EntityID() string { return b.ID }

type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Body      string    `json:"body,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Template) EntityID() string { return t.ID }

type AuditStatus string

const (
	AuditQueued    AuditStatus = "queued"
	AuditRunning   AuditStatus = "running"
	AuditCompleted AuditStatus = "completed"
	AuditFailed    AuditStatus = "failed"
)

type Audit struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"projectId"`
	Status    AuditStatus `json:"status"`
	Score     int         `json:"score"`
	Issues    int         `json:"issues"`
	StartedAt time.Time   `json:"startedAt"`
}

func (a Audit) EntityID() string { return a.ID }

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) EntityID() string { return u.ID }

type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentScheduled ContentStatus = "scheduled"
	ContentPublished ContentStatus = "published"
)

type ContentItem struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    ContentStatus `json:"status"`
	Channel   string        `json:"channel"`
	Author    string        `json:"author"`
	PublishAt time.Time     `json:"publishAt"`
	WordCount int           `json:"wordCount"`
	Traffic   int           `json:"traffic"`
	Tags      []string      `json:"tags,omitempty"`
}

func (c ContentItem) EntityID() string { return c.ID }

func (c ContentItem) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}
