// Package fieldpath addresses leaf values inside document payloads using
// dotted paths. Numeric segments index into sequences, so "lineItems.0.price"
// selects the price of the first line item.
package fieldpath

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Get resolves path against payload and reports whether a value was found.
// A path that runs into a missing key, an out-of-range index, or a
// non-container before its final segment resolves to (nil, false).
func Get(payload map[string]interface{}, path string) (interface{}, bool) {
	if payload == nil || strings.TrimSpace(path) == "" {
		return nil, false
	}
	var current interface{} = payload
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []interface{}:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at the location designated by path. Intermediate
// containers must already exist; template shapes are fixed, so Set never
// creates them.
func Set(payload map[string]interface{}, path string, value interface{}) error {
	if payload == nil {
		return fmt.Errorf("nil payload")
	}
	segments := strings.Split(path, ".")
	if len(segments) == 0 || strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty field path")
	}
	var current interface{} = payload
	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := current.(type) {
		case map[string]interface{}:
			if last {
				node[segment] = value
				return nil
			}
			next, ok := node[segment]
			if !ok {
				return fmt.Errorf("path %q: missing segment %q", path, segment)
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return fmt.Errorf("path %q: segment %q is not an index", path, segment)
			}
			if idx < 0 || idx >= len(node) {
				return fmt.Errorf("path %q: index %d out of range", path, idx)
			}
			if last {
				node[idx] = value
				return nil
			}
			current = node[idx]
		default:
			return fmt.Errorf("path %q: segment %q addresses a leaf", path, segment)
		}
	}
	return nil
}

// Diff returns the leaf paths whose values differ between original and
// modified. Paths are enumerated from the modified payload's shape, emitted
// only at leaves (values that are neither maps nor sequences), compared by
// deep equality, and returned deduplicated in sorted order. Keys named in
// skipKeys are skipped at every nesting level.
func Diff(original, modified map[string]interface{}, skipKeys ...string) []string {
	skip := make(map[string]struct{}, len(skipKeys))
	for _, key := range skipKeys {
		skip[key] = struct{}{}
	}
	changed := make(map[string]struct{})
	diffValue("", original, modified, skip, changed)
	if len(changed) == 0 {
		return nil
	}
	paths := make([]string, 0, len(changed))
	for path := range changed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func diffValue(prefix string, original, modified interface{}, skip map[string]struct{}, changed map[string]struct{}) {
	switch node := modified.(type) {
	case map[string]interface{}:
		origMap, _ := original.(map[string]interface{})
		for key, value := range node {
			if _, skipped := skip[key]; skipped {
				continue
			}
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			var origValue interface{}
			if origMap != nil {
				origValue = origMap[key]
			}
			diffValue(path, origValue, value, skip, changed)
		}
	case []interface{}:
		origSlice, _ := original.([]interface{})
		for idx, value := range node {
			path := strconv.Itoa(idx)
			if prefix != "" {
				path = prefix + "." + path
			}
			var origValue interface{}
			if idx < len(origSlice) {
				origValue = origSlice[idx]
			}
			diffValue(path, origValue, value, skip, changed)
		}
	default:
		if prefix == "" {
			return
		}
		if !reflect.DeepEqual(original, modified) {
			changed[prefix] = struct{}{}
		}
	}
}

// Leaves enumerates every leaf path in payload, sorted.
func Leaves(payload map[string]interface{}, skipKeys ...string) []string {
	skip := make(map[string]struct{}, len(skipKeys))
	for _, key := range skipKeys {
		skip[key] = struct{}{}
	}
	found := make(map[string]struct{})
	collectLeaves("", payload, skip, found)
	if len(found) == 0 {
		return nil
	}
	paths := make([]string, 0, len(found))
	for path := range found {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func collectLeaves(prefix string, value interface{}, skip map[string]struct{}, found map[string]struct{}) {
	switch node := value.(type) {
	case map[string]interface{}:
		for key, child := range node {
			if _, skipped := skip[key]; skipped {
				continue
			}
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			collectLeaves(path, child, skip, found)
		}
	case []interface{}:
		for idx, child := range node {
			path := strconv.Itoa(idx)
			if prefix != "" {
				path = prefix + "." + path
			}
			collectLeaves(path, child, skip, found)
		}
	default:
		if prefix != "" {
			found[prefix] = struct{}{}
		}
	}
}

// TopLevel reduces a set of dotted paths to their deduplicated first
// segments, preserving first-seen order. Extraction requests are scoped by
// top-level field names only, so sibling paths under one prefix collapse
// onto a single requested property.
func TopLevel(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		head := path
		if idx := strings.Index(path, "."); idx >= 0 {
			head = path[:idx]
		}
		head = strings.TrimSpace(head)
		if head == "" {
			continue
		}
		if _, ok := seen[head]; ok {
			continue
		}
		seen[head] = struct{}{}
		out = append(out, head)
	}
	return out
}
