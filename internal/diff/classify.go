package diff

import (
	"maps"
	"slices"
)

// Classification is the outcome of classifying one endpoint.
type Classification struct {
	Change Change
	// All is every diff touching the endpoint, at any nesting level.
	All []Entry
}

// Classify decides the change of an endpoint and collects all of its diffs.
//
// Only the top-level list decides the change. ChangeNone means the top-level
// list is empty; callers must still look at All before concluding that the
// endpoint did not change.
func Classify(ep Endpoint) Classification {
	return Classification{
		Change: topLevelChange(ep.Diffs),
		All:    AllDiffs(ep),
	}
}

func topLevelChange(diffs []Entry) Change {
	for _, d := range diffs {
		if d.Trail == "" {
			return d.Kind()
		}
	}
	if len(diffs) > 0 {
		return ChangeChanged
	}
	return ChangeNone
}

// AllDiffs flattens every diff list of the endpoint tree. Map-keyed records
// are visited in key order so the result is deterministic.
func AllDiffs(ep Endpoint) []Entry {
	var items []Entry
	items = append(items, ep.Diffs...)
	items = append(items, ep.Request.Diffs...)
	for _, params := range []map[string]Node{
		ep.QueryParameters,
		ep.CookieParameters,
		ep.PathParameters,
		ep.HeaderParameters,
	} {
		items = appendNodes(items, params)
	}
	items = appendContents(items, ep.Request.Contents)
	for _, status := range sortedKeys(ep.Responses) {
		resp := ep.Responses[status]
		items = append(items, resp.Diffs...)
		items = appendNodes(items, resp.Headers)
		items = appendContents(items, resp.Contents)
	}
	return items
}

func appendNodes(dst []Entry, nodes map[string]Node) []Entry {
	for _, k := range sortedKeys(nodes) {
		dst = append(dst, nodes[k].Diffs...)
	}
	return dst
}

func appendContents(dst []Entry, contents map[string]Content) []Entry {
	for _, k := range sortedKeys(contents) {
		c := contents[k]
		dst = append(dst, c.Examples.Diffs...)
		dst = appendNodes(dst, c.Fields)
	}
	return dst
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
