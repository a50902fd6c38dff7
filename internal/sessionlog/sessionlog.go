// Package sessionlog records the commands of one shell session and writes
// them out as an XML document when the session ends.
//
// Records live only in memory until Flush. A process that dies before exit
// loses them; this is accepted.
package sessionlog

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/vfsh/internal/filesystem"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// Status is the outcome stored with each record.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not-found"
	StatusError    Status = "error"
)

// Record is one invoked command.
type Record struct {
	Command   string
	Timestamp time.Time
	Status    Status
}

// Log is an append-only sequence of records owned by a single session.
// It is not safe for concurrent use.
type Log struct {
	user       string
	id         string
	records    []Record
	flushed    bool
	fsProvider filesystem.Provider
}

// New creates a log for user that flushes to the OS filesystem.
func New(user string) *Log {
	return NewWithFS(user, filesystem.NewOSFileSystem())
}

// NewWithFS creates a log with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewWithFS(user string, fsProvider filesystem.Provider) *Log {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Log{
		user:       user,
		id:         uuid.NewString(),
		fsProvider: fsProvider,
	}
}

// User returns the session's username.
func (l *Log) User() string { return l.user }

// ID returns the random identifier written on the document root.
func (l *Log) ID() string { return l.id }

// Len returns the number of records.
func (l *Log) Len() int { return len(l.records) }

// Flushed reports whether Flush has succeeded.
func (l *Log) Flushed() bool { return l.flushed }

// Append adds a record. Timestamps never go backwards: an instant earlier
// than the previous record's is raised to it.
func (l *Log) Append(command string, at time.Time, status Status) {
	if n := len(l.records); n > 0 && at.Before(l.records[n-1].Timestamp) {
		at = l.records[n-1].Timestamp
	}
	l.records = append(l.records, Record{Command: command, Timestamp: at, Status: status})
}

// Records returns a copy of the records in invocation order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

type xmlSession struct {
	XMLName  xml.Name     `xml:"session"`
	User     string       `xml:"user,attr"`
	ID       string       `xml:"id,attr"`
	Commands []xmlCommand `xml:"command"`
}

type xmlCommand struct {
	Name      string `xml:"name,attr"`
	Timestamp string `xml:"timestamp,attr"`
	Status    string `xml:"status,attr,omitempty"`
}

// Marshal renders the document, XML declaration included.
func (l *Log) Marshal() ([]byte, error) {
	doc := xmlSession{
		User:     l.user,
		ID:       l.id,
		Commands: make([]xmlCommand, 0, len(l.records)),
	}
	for _, r := range l.records {
		doc.Commands = append(doc.Commands, xmlCommand{
			Name:      r.Command,
			Timestamp: r.Timestamp.Format(time.RFC3339Nano),
			Status:    string(r.Status),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode session log: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// Flush writes the document to path. It succeeds at most once; later calls
// return vfsh.ErrLogAlreadyFlushed.
func (l *Log) Flush(path string) error {
	if l.flushed {
		return vfsh.ErrLogAlreadyFlushed
	}

	data, err := l.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %v", vfsh.ErrLogFlushFailed, err)
	}
	if err := l.fsProvider.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", vfsh.ErrLogFlushFailed, path, err)
	}

	l.flushed = true
	return nil
}
