package statsd

import (
	"strconv"
	"strings"
	"time"
)

// Status is a service check outcome
type Status int

// Well-known service check statuses
const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

var statusNames = map[string]Status{
	"ok":       OK,
	"warning":  Warning,
	"critical": Critical,
	"unknown":  Unknown,
}

// ParseStatus accepts a status name ("ok", "warning", "critical",
// "unknown") or its numeric code (0-3)
func ParseStatus(str string) (Status, error) {
	if status, ok := statusNames[strings.ToLower(str)]; ok {
		return status, nil
	}

	code, err := strconv.Atoi(str)
	if err != nil || code < int(OK) || code > int(Unknown) {
		return Unknown, ErrConfig.New("unknown service check status: %s", str)
	}

	return Status(code), nil
}

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}

	return "unknown"
}

// ServiceCheck is a DogStatsD service check report
type ServiceCheck struct {
	Name   string
	Status Status
	// Time of the check (defaults to the agent's receive time)
	Time time.Time
	// Hostname the check ran on
	Hostname string
	// Message describing the current state
	Message string
}

// ServiceCheck sends a service check report. A no-op for vanilla
// statsd servers.
//
// The wire form is:
//
//	_sc|<name>|<status>[|d:<ts>][|h:<host>][|#tags][|m:<message>]
//
// The message always trails the tags: the agent parser treats
// everything after "m:" as message text.
func (c *Client) ServiceCheck(sc *ServiceCheck, tags ...Tag) error {
	if !c.config.Datadog {
		return nil
	}

	buf := make([]byte, 0, 64+len(sc.Name)+len(sc.Message))
	buf = append(buf, "_sc|"...)
	buf = append(buf, c.prefix...)
	buf = append(buf, sc.Name...)
	buf = append(buf, '|')
	buf = strconv.AppendInt(buf, int64(sc.Status), 10)

	if !sc.Time.IsZero() {
		buf = append(buf, "|d:"...)
		buf = strconv.AppendInt(buf, sc.Time.Unix(), 10)
	}

	if sc.Hostname != "" {
		buf = append(buf, "|h:"...)
		buf = append(buf, sc.Hostname...)
	}

	buf = append(buf, c.tagsFragment(tags)...)

	if sc.Message != "" {
		buf = append(buf, "|m:"...)
		buf = append(buf, sc.Message...)
	}

	return c.send([]string{string(buf)})
}
