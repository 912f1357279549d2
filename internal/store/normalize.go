package store

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// NormalizeList decodes a list response into the canonical Page shape.
// Accepted shapes: a bare array, {data: [...], total, page, limit},
// {data: {items|records: [...], pagination: {...}}} and the canonical
// {records: [...], pagination: {...}} produced by encoding a Page.
func NormalizeList[T any](raw []byte) (Page[T], error) {
	return normalizeList[T](raw, Pagination{})
}

// normalizeList fills page and limit from requested when the payload omits them.
func normalizeList[T any](raw []byte, requested Pagination) (Page[T], error) {
	if !gjson.ValidBytes(raw) {
		return Page[T]{}, fmt.Errorf("%w: invalid json", ErrBadEnvelope)
	}

	root := gjson.ParseBytes(raw)
	recs, meta, ok := locateList(root)
	if !ok {
		return Page[T]{}, fmt.Errorf("%w: no record list found", ErrBadEnvelope)
	}

	var records []T
	if err := json.Unmarshal([]byte(recs.Raw), &records); err != nil {
		return Page[T]{}, fmt.Errorf("failed to decode records: %w", err)
	}

	p := Pagination{
		Page:       int(firstOf(meta, "page", "current_page").Int()),
		Limit:      int(firstOf(meta, "limit", "per_page", "pageSize").Int()),
		Total:      int(firstOf(meta, "total", "total_count").Int()),
		TotalPages: int(firstOf(meta, "totalPages", "total_pages").Int()),
	}
	if !firstOf(meta, "page", "current_page").Exists() {
		p.Page = requested.Page
	}
	if !firstOf(meta, "total", "total_count").Exists() {
		p.Total = len(records)
	}
	if !firstOf(meta, "limit", "per_page", "pageSize").Exists() {
		p.Limit = requested.Limit
		if p.Limit <= 0 {
			p.Limit = len(records)
		}
	}

	return Normalize(Page[T]{Records: records, Pagination: p}), nil
}

func locateList(root gjson.Result) (recs, meta gjson.Result, ok bool) {
	switch {
	case root.IsArray():
		return root, gjson.Result{}, true
	case root.Get("records").IsArray():
		return root.Get("records"), root.Get("pagination"), true
	case root.Get("data").IsArray():
		if pg := root.Get("pagination"); pg.IsObject() {
			return root.Get("data"), pg, true
		}
		return root.Get("data"), root, true
	case root.Get("data").IsObject():
		data := root.Get("data")
		list := firstOf(data, "items", "records", "data")
		if !list.IsArray() {
			return gjson.Result{}, gjson.Result{}, false
		}
		switch {
		case data.Get("pagination").IsObject():
			return list, data.Get("pagination"), true
		case root.Get("pagination").IsObject():
			return list, root.Get("pagination"), true
		default:
			return list, data, true
		}
	}
	return gjson.Result{}, gjson.Result{}, false
}

func firstOf(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// NormalizeRecord decodes a single-entity response: a bare object,
// {data: {...}} or {record: {...}}.
func NormalizeRecord[T any](raw []byte) (T, error) {
	var zero T
	if !gjson.ValidBytes(raw) {
		return zero, fmt.Errorf("%w: invalid json", ErrBadEnvelope)
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return zero, fmt.Errorf("%w: expected object", ErrBadEnvelope)
	}

	body := root
	if !root.Get("id").Exists() {
		if d := firstOf(root, "data", "record"); d.IsObject() {
			body = d
		}
	}

	var rec T
	if err := json.Unmarshal([]byte(body.Raw), &rec); err != nil {
		return zero, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// Normalize fills derived pagination fields and enforces the page size.
// Normalize(Normalize(p)) == Normalize(p).
func Normalize[T any](p Page[T]) Page[T] {
	out := Page[T]{Pagination: p.Pagination.withDerived()}
	records := p.Records
	if out.Pagination.Limit > 0 && len(records) > out.Pagination.Limit {
		records = records[:out.Pagination.Limit]
	}
	out.Records = make([]T, len(records))
	copy(out.Records, records)
	return out
}
