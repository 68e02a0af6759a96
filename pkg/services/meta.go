package services

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"blog-cms/pkg/models"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts the shapes front matter decoders produce for dates:
// time.Time (yaml timestamps, toml offset date-times), toml local dates,
// and plain strings.
func ParseDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case toml.LocalDate:
		return v.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", v)
	default:
		return time.Time{}, fmt.Errorf("date has type %T, want string or timestamp", value)
	}
}

// DecodeArticleMeta extracts the recognized keys from a parsed front matter
// map. Unknown keys are ignored here; the validator reports them.
func DecodeArticleMeta(fm map[string]interface{}) models.ArticleMeta {
	meta := models.ArticleMeta{
		Title:        stringValue(fm["title"]),
		Summary:      stringValue(fm["summary"]),
		Layout:       stringValue(fm["layout"]),
		CanonicalURL: stringValue(fm["canonicalUrl"]),
	}
	if d, err := ParseDate(fm["date"]); err == nil {
		meta.Date = d.Format(time.RFC3339)
	} else if s := stringValue(fm["date"]); s != "" {
		meta.Date = s
	}
	if b, ok := fm["draft"].(bool); ok {
		meta.Draft = b
	}
	meta.Tags, _ = stringListValue(fm["tags"])
	meta.Images, _ = stringListValue(fm["images"])
	return meta
}

func stringValue(value interface{}) string {
	s, _ := value.(string)
	return s
}

// stringListValue coerces a front matter list into []string. The second
// return reports whether every element really was a string.
func stringListValue(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		clean := true
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				clean = false
				s = fmt.Sprint(elem)
			}
			out = append(out, s)
		}
		return out, clean
	case string:
		// scalar where a list is expected
		return []string{v}, false
	default:
		return nil, false
	}
}
