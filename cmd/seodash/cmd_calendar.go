package main

import (
	"fmt"
	"io"
	"seodash/internal/seo"
	"seodash/internal/store"
	"strings"
	"text/tabwriter"
	"time"
)

type CalendarCmd struct {
	ListFlags
	Status  string   `help:"Only items with this status (draft, scheduled, published)"`
	Channel string   `help:"Only items for this channel"`
	Tag     []string `help:"Only items carrying every tag"`
	From    string   `help:"Earliest publish date (YYYY-MM-DD, inclusive)"`
	To      string   `help:"Latest publish date (YYYY-MM-DD, exclusive)"`
	By      string   `help:"Sort by publish_at, title, status, traffic or word_count" default:"publish_at"`
	Desc    bool     `help:"Sort descending"`
	Group   string   `help:"Group by day, status or channel"`
}

func (cmd *CalendarCmd) filter() (seo.CalendarFilter, error) {
	f := seo.CalendarFilter{
		Status:  seo.ContentStatus(cmd.Status),
		Channel: cmd.Channel,
		Tags:    cmd.Tag,
	}

	var err error
	if f.From, err = parseDate(cmd.From); err != nil {
		return f, fmt.Errorf("invalid --from: %w", err)
	}
	if f.To, err = parseDate(cmd.To); err != nil {
		return f, fmt.Errorf("invalid --to: %w", err)
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}

func (cmd *CalendarCmd) Run(g *Globals) error {
	project, err := requireProject(g)
	if err != nil {
		return err
	}

	switch seo.CalendarGrouping(cmd.Group) {
	case "", seo.GroupByDay, seo.GroupByStatus, seo.GroupByChannel:
	default:
		return fmt.Errorf("invalid --group %q: want day, status or channel", cmd.Group)
	}

	filter, err := cmd.filter()
	if err != nil {
		return err
	}

	q, err := cmd.query(g, contentResource, func(q *store.Query) {
		if cmd.Status != "" {
			q.Status = cmd.Status
		}
		if cmd.Channel != "" {
			*q = q.WithFilter("channel", cmd.Channel)
		}
	})
	if err != nil {
		return err
	}
	if err := g.Dash.Content.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to load content calendar", err)
	}
	filter.Query = q.Search

	items := seo.FilterCalendar(g.Dash.Content.Records(), filter)
	items = seo.SortCalendar(items, seo.CalendarSortField(cmd.By), cmd.Desc)
	if len(items) == 0 {
		fmt.Fprintf(g.Out, "No content planned for %s.\n", project.Name)
		return nil
	}

	if cmd.Group == "" {
		if err := writeCalendar(g.Out, items); err != nil {
			return err
		}
	} else {
		for i, group := range seo.GroupCalendar(items, seo.CalendarGrouping(cmd.Group), time.Local) {
			if i > 0 {
				fmt.Fprintln(g.Out)
			}
			fmt.Fprintf(g.Out, "%s (%d)\n", group.Key, len(group.Items))
			if err := writeCalendar(g.Out, group.Items); err != nil {
				return err
			}
		}
	}

	s := seo.CalendarMetrics(items)
	fmt.Fprintf(g.Out, "\n%d published · %d scheduled · %d drafts · %s words · %s visits\n",
		s.Published, s.Scheduled, s.Drafts, store.FormatInt(s.TotalWords), store.FormatInt(s.TotalTraffic))
	fmt.Fprintln(g.Out, pageFooter(g.Dash.Content.Pagination(), "items"))
	return nil
}

func writeCalendar(out io.Writer, items []seo.ContentItem) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTITLE\tSTATUS\tCHANNEL\tTAGS")
	fmt.Fprintln(w, "----\t-----\t------\t-------\t----")
	for _, it := range items {
		date := "-"
		if !it.PublishAt.IsZero() {
			date = it.PublishAt.In(time.Local).Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			date, it.Title, it.Status, it.Channel, strings.Join(it.Tags, ", "))
	}
	return w.Flush()
}
