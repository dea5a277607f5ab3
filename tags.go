package statsd

import (
	"strconv"
	"strings"
)

// Tag is a single message tag. A tag with an empty Value is emitted as a
// bare string ("canary"), otherwise as "key:value" ("env:prod").
type Tag struct {
	Key   string
	Value string
}

// StringTag builds a key:value tag
func StringTag(key string, value string) Tag {
	return Tag{Key: key, Value: value}
}

// IntTag builds a key:value tag with an integer value
func IntTag(key string, value int) Tag {
	return Tag{Key: key, Value: strconv.Itoa(value)}
}

// String returns the wire form of the tag
func (t Tag) String() string {
	if t.Value == "" {
		return t.Key
	}

	return t.Key + ":" + t.Value
}

// MarshalText implements encoding.TextMarshaler (used by TOML encoding)
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses "key:value" or a bare "key"
func (t *Tag) UnmarshalText(text []byte) error {
	*t = parseTag(string(text))
	return nil
}

// ParseTags parses a comma-separated tag list ("a,b:c").
// An empty string yields nil.
func ParseTags(str string) []Tag {
	if str == "" {
		return nil
	}

	parts := strings.Split(str, ",")
	tags := make([]Tag, len(parts))

	for i, part := range parts {
		tags[i] = parseTag(part)
	}

	return tags
}

func parseTag(str string) Tag {
	key, value, _ := strings.Cut(str, ":")
	return Tag{Key: key, Value: value}
}

func (t Tag) append(buf []byte) []byte {
	buf = append(buf, t.Key...)
	if t.Value != "" {
		buf = append(buf, ':')
		buf = append(buf, t.Value...)
	}

	return buf
}

// tagsFragment renders the "|#t1,t2" suffix from the default tags
// followed by the per-call tags, in the given order, verbatim.
// The fragment is empty for vanilla statsd servers: they do not
// understand tags at all.
func (c *Client) tagsFragment(tags []Tag) string {
	if !c.config.Datadog {
		return ""
	}

	total := len(c.config.Tags) + len(tags)
	if total == 0 {
		return ""
	}

	buf := make([]byte, 0, 16*total)
	buf = append(buf, "|#"...)

	i := 0
	for _, tag := range c.config.Tags {
		buf = tag.append(buf)
		if i != total-1 {
			buf = append(buf, ',')
		}
		i++
	}

	for _, tag := range tags {
		buf = tag.append(buf)
		if i != total-1 {
			buf = append(buf, ',')
		}
		i++
	}

	return string(buf)
}
