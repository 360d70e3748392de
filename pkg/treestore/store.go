// Package treestore keeps JSON documents addressed by slash-separated paths
// and reads any ancestor path back as a nested object assembled from its
// descendants.
//
// A written path holds one document. Reading a path returns the document
// stored exactly there if one exists; otherwise the documents below it are
// folded into a nested map keyed by the remaining path segments. Writers
// keep the rule that a written path is never an ancestor of another written
// path: Set replaces the whole subtree, so it clears descendants first.
package treestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by Get when nothing lives at or below a path.
	ErrNotFound = errors.New("treestore: not found")
	// ErrInvalidPath rejects empty paths, empty segments and reserved characters.
	ErrInvalidPath = errors.New("treestore: invalid path")
	// ErrNotCounter is returned by Increment when the target is not an integer.
	ErrNotCounter = errors.New("treestore: value is not a counter")
)

// Store is the document tree used by every CMS repository.
type Store interface {
	// Get decodes the value at path into dest.
	Get(ctx context.Context, path string, dest interface{}) error
	// Exists reports whether a document lives at or below path.
	Exists(ctx context.Context, path string) (bool, error)
	// Set overwrites the subtree at path with value.
	Set(ctx context.Context, path string, value interface{}) error
	// Update shallow-merges fields into the object at path. A nil field value
	// removes the key.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// Remove deletes the subtree at path.
	Remove(ctx context.Context, path string) error
	// Increment adds delta to the integer at path, starting from zero.
	Increment(ctx context.Context, path string, delta int64) (int64, error)
	// SetIfAbsent writes value only when nothing lives at or below path.
	SetIfAbsent(ctx context.Context, path string, value interface{}) (bool, error)
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}

const reservedChars = ".#$[]"

// Clean validates path and returns it without leading or trailing slashes.
func Clean(path string) (string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" {
			return "", fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
		if strings.ContainsAny(seg, reservedChars) {
			return "", fmt.Errorf("%w: reserved character in %q", ErrInvalidPath, seg)
		}
	}
	return trimmed, nil
}

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// SafeKey turns arbitrary text into a single legal path segment.
func SafeKey(raw string) string {
	if raw == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '/' || r < 0x20 || strings.ContainsRune(reservedChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// entry is a stored document and its full path.
type entry struct {
	Path  string `db:"path"`
	Value []byte `db:"value"`
}

// assemble folds the entries at or below root into one JSON value. The
// exact document wins over descendants. found is false when entries is empty.
func assemble(root string, entries []entry) (raw []byte, found bool, err error) {
	if len(entries) == 0 {
		return nil, false, nil
	}
	for _, e := range entries {
		if e.Path == root {
			return e.Value, true, nil
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	tree := map[string]interface{}{}
	prefix := root + "/"
	for _, e := range entries {
		rel := strings.TrimPrefix(e.Path, prefix)
		if rel == e.Path {
			continue
		}
		var value interface{}
		if err := json.Unmarshal(e.Value, &value); err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", e.Path, err)
		}
		insert(tree, strings.Split(rel, "/"), value)
	}

	raw, err = json.Marshal(tree)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func insert(tree map[string]interface{}, segments []string, value interface{}) {
	node := tree
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			node[seg] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}

// mergeObject applies fields to an existing JSON object document.
func mergeObject(existing []byte, fields map[string]interface{}) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("existing value is not an object: %w", err)
		}
		if doc == nil {
			doc = map[string]json.RawMessage{}
		}
	}
	for k, v := range fields {
		if v == nil {
			delete(doc, k)
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		doc[k] = raw
	}
	return json.Marshal(doc)
}

// splitFields separates fields to write from keys to delete.
func splitFields(fields map[string]interface{}) (set map[string]interface{}, removed []string) {
	set = make(map[string]interface{}, len(fields))
	removed = []string{}
	for k, v := range fields {
		if v == nil {
			removed = append(removed, k)
			continue
		}
		set[k] = v
	}
	sort.Strings(removed)
	return set, removed
}

func decode(raw []byte, dest interface{}) error {
	if dest == nil {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func checkKeys(fields map[string]interface{}) error {
	for k := range fields {
		if k == "" || strings.ContainsAny(k, reservedChars+"/") {
			return fmt.Errorf("%w: field %q", ErrInvalidPath, k)
		}
	}
	return nil
}
