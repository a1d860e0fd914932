// internal/models/query.go
package models

import (
	"fmt"
	"sort"
	"strings"
)

// ResourceKind identifies a lookup category. Each kind carries its own cache
// key prefix and TTL; the rate-limit budget is shared across all of them.
type ResourceKind string

const (
	KindJobSearch    ResourceKind = "jobs"
	KindJobDetail    ResourceKind = "job_details"
	KindCourseSearch ResourceKind = "courses"
	KindCourseDetail ResourceKind = "course_details"
	KindHealth       ResourceKind = "health"
)

// Query is an immutable search request: a free-text term plus optional
// filters and a result-count limit.
type Query struct {
	Kind     ResourceKind
	Term     string
	Location string
	Platform string
	Language string
	Limit    int
}

// CacheKey derives the cache key for the query. Parameter names are sorted
// before concatenation so that semantically equal queries always map to the
// same key.
func (q Query) CacheKey() string {
	params := map[string]string{
		"query": q.Term,
		"limit": fmt.Sprintf("%d", q.Limit),
	}
	if q.Location != "" {
		params["location"] = q.Location
	}
	if q.Platform != "" {
		params["platform"] = q.Platform
	}
	if q.Language != "" {
		params["language"] = q.Language
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+params[k])
	}
	return string(q.Kind) + ":" + strings.Join(parts, "|")
}

// DetailKey derives the cache key for a single-resource lookup.
func DetailKey(kind ResourceKind, id string) string {
	return string(kind) + ":" + id
}
