package dtos

import (
	"bytes"
	"encoding/json"
	"time"
)

// Nullable tells an absent JSON field apart from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Null reports whether the field was present and null.
func (n Nullable[T]) Null() bool {
	return n.Set && n.Value == nil
}

func put[T any](changes map[string]any, field string, n Nullable[T]) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		changes[field] = nil
		return
	}
	changes[field] = *n.Value
}

// putOptString stores "" as NULL.
func putOptString(changes map[string]any, field string, n Nullable[string]) {
	if !n.Set {
		return
	}
	if n.Value == nil || *n.Value == "" {
		changes[field] = nil
		return
	}
	changes[field] = *n.Value
}

func putDate(changes map[string]any, field string, n Nullable[Date]) {
	if !n.Set {
		return
	}
	if t := n.Value.Ptr(); t != nil {
		changes[field] = *t
		return
	}
	changes[field] = nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func optTime(d *Date) *time.Time {
	return d.Ptr()
}
