package statsd

import (
	"strconv"
	"strings"
	"time"
)

// Event is a DogStatsD event. Only non-zero fields are transmitted.
type Event struct {
	Title string
	Text  string
	// Time of the event (defaults to the agent's receive time)
	Time time.Time
	// Hostname to attribute the event to
	Hostname string
	// AggregationKey groups related events together
	AggregationKey string
	// Priority is "normal" or "low"
	Priority string
	// SourceTypeName is the origin type ("my_apps", "jenkins", ...)
	SourceTypeName string
	// AlertType is "error", "warning", "info" or "success"
	AlertType string
}

// NewEvent builds an event with the two mandatory fields set
func NewEvent(title string, text string) *Event {
	return &Event{Title: title, Text: text}
}

// Event sends an event. A no-op for vanilla statsd servers.
//
// The wire form is a single line:
//
//	_e{<titleLen>,<textLen>}:<title>|<text>[|<flag>:<value>...][|#tags]
//
// Lengths are in bytes. The emitted title carries the namespace prefix
// but the declared length counts the original title only (the agent
// tolerates the overrun). The text is sanitized first: the protocol is
// line-oriented, so raw newlines would split the event in two.
func (c *Client) Event(e *Event, tags ...Tag) error {
	if !c.config.Datadog {
		return nil
	}

	title := c.prefix + e.Title
	text := sanitizeEventText(e.Text)

	buf := make([]byte, 0, 64+len(title)+len(text))
	buf = append(buf, "_e{"...)
	buf = strconv.AppendInt(buf, int64(len(e.Title)), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(len(text)), 10)
	buf = append(buf, "}:"...)
	buf = append(buf, title...)
	buf = append(buf, '|')
	buf = append(buf, text...)

	if !e.Time.IsZero() {
		buf = append(buf, "|d:"...)
		buf = strconv.AppendInt(buf, e.Time.Unix(), 10)
	}

	if e.Hostname != "" {
		buf = append(buf, "|h:"...)
		buf = append(buf, e.Hostname...)
	}

	if e.AggregationKey != "" {
		buf = append(buf, "|k:"...)
		buf = append(buf, e.AggregationKey...)
	}

	if e.Priority != "" {
		buf = append(buf, "|p:"...)
		buf = append(buf, e.Priority...)
	}

	if e.SourceTypeName != "" {
		buf = append(buf, "|s:"...)
		buf = append(buf, e.SourceTypeName...)
	}

	if e.AlertType != "" {
		buf = append(buf, "|t:"...)
		buf = append(buf, e.AlertType...)
	}

	buf = append(buf, c.tagsFragment(tags)...)

	return c.send([]string{string(buf)})
}

func sanitizeEventText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\n", `\n`)
}
