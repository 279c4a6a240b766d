package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

func matches(doc Document, filter map[string]string) bool {
	for key, want := range filter {
		if valueString(doc[key]) != want {
			return false
		}
	}
	return true
}

// valueString renders a field for filtering and sorting. Structured times use
// the canonical layout so they order alongside serialized ones.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return FormatTimestamp(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return FormatTimestamp(*t)
	default:
		return fmt.Sprint(t)
	}
}

// applyQuery filters, sorts and truncates docs in place.
func applyQuery(docs []Document, q Query) []Document {
	out := docs[:0]
	for _, doc := range docs {
		if matches(doc, q.Filter) {
			out = append(out, doc)
		}
	}
	if q.SortField != "" {
		slices.SortStableFunc(out, func(a, b Document) int {
			c := strings.Compare(valueString(a[q.SortField]), valueString(b[q.SortField]))
			if q.SortDesc {
				return -c
			}
			return c
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func encodeDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

func decodeDocument(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("docstore: decode document: %w", err)
	}
	return doc, nil
}
