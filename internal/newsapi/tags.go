// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"encoding/json"
	"strings"
)

// Tags arrive from the backend either as a JSON array of strings or as
// a single comma-joined string, depending on the endpoint. TagList
// accepts both on decode; SerializeTags produces the trimmed
// comma-joined form the write endpoints expect.

// TagList is a slice of tags tolerant of both wire encodings.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler for both encodings.
// null and unrecognized shapes decode to an empty list.
func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TagList{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = NormalizeTags(arr...)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*t = NormalizeTags(strings.Split(joined, ",")...)
		return nil
	}

	*t = TagList{}
	return nil
}

// NormalizeTags trims each entry and drops empties, preserving order.
func NormalizeTags(raw ...string) TagList {
	out := TagList{}
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseTags splits a comma-separated form value into a normalized list.
func ParseTags(s string) TagList {
	if s == "" {
		return TagList{}
	}
	return NormalizeTags(strings.Split(s, ",")...)
}

// SerializeTags joins tags into the trimmed, comma-joined wire form,
// dropping empty entries. Serializing a normalized list and parsing it
// back yields the same list.
func SerializeTags(tags []string) string {
	return strings.Join(NormalizeTags(tags...), ",")
}
