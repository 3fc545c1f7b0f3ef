package domain

import "time"

// Payload is the decoded JSON body of an inbound webhook. Linkding's webhook
// shape is not stable across versions and bridge plugins, so extraction is a
// best-effort cascade over candidate locations rather than a strict schema.
type Payload map[string]interface{}

// candidate returns the bookmark sub-object at one possible location, or nil.
type candidate func(Payload) map[string]interface{}

// Candidate locations are probed in order; the first one holding a non-empty
// url wins. Known shapes: the bookmark at the top level, or nested under
// "data", "bookmark" or "object" depending on the sending integration.
var candidates = []candidate{
	func(p Payload) map[string]interface{} { return map[string]interface{}(p) },
	nestedObject("data"),
	nestedObject("bookmark"),
	nestedObject("object"),
}

func nestedObject(key string) candidate {
	return func(p Payload) map[string]interface{} {
		obj, ok := p[key].(map[string]interface{})
		if !ok {
			return nil
		}
		return obj
	}
}

// Normalize extracts the canonical bookmark record from an arbitrary webhook
// payload. The second return value is false when no candidate location holds
// a usable url; that is a client-side condition, not a fault.
func Normalize(p Payload, now func() time.Time) (*Bookmark, bool) {
	for _, c := range candidates {
		obj := c(p)
		if obj == nil {
			continue
		}
		url := stringField(obj, "url")
		if url == "" {
			continue
		}
		return mapBookmark(obj, url, now), true
	}
	return nil, false
}

// mapBookmark maps a selected candidate object onto the canonical record
// using first-match-wins field aliasing.
func mapBookmark(obj map[string]interface{}, url string, now func() time.Time) *Bookmark {
	title := stringField(obj, "title", "website_title")
	if title == "" {
		title = DefaultTitle
	}

	return &Bookmark{
		URL:         url,
		Title:       title,
		Description: stringField(obj, "description", "website_description"),
		Tags:        tagsField(obj, "tag_names", "tags"),
		DateAdded:   dateField(obj, now, "date_added", "created"),
	}
}

// stringField returns the first non-empty string found under the given keys.
func stringField(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// tagsField returns the first value under the given keys that is a sequence,
// keeping only its string elements. Any non-sequence value resolves to empty.
func tagsField(obj map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		raw, present := obj[key]
		if !present {
			continue
		}
		list, ok := raw.([]interface{})
		if !ok {
			return nil
		}
		tags := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

// dateFormats are the timestamp layouts linkding has been observed to emit.
var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// dateField parses the first parsable timestamp under the given keys,
// falling back to the current processing time.
func dateField(obj map[string]interface{}, now func() time.Time, keys ...string) time.Time {
	for _, key := range keys {
		s, ok := obj[key].(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return now()
}
