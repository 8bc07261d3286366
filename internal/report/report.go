// Package report renders a solar.Report as the section-tagged text consumed by
// the building energy model, as a JSON document, or as a monthly CSV summary.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/couchcryptid/isoweather/internal/solar"
)

// Format selects the serialization used by Write.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned by ParseFormat for names outside text, json and csv.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat maps a case-insensitive format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType is the HTTP media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Source describes the weather file a report was computed from.
type Source struct {
	Path          string `json:"path"`
	Rows          int    `json:"rows"`
	CoercedFields int    `json:"coerced_fields"`
}

// Document is a computed report plus the provenance the sinks publish with it.
type Document struct {
	Report      *solar.Report
	Source      Source
	GeneratedAt time.Time
}

// Write serializes doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	if doc.Report == nil {
		return errors.New("report: nil report")
	}
	switch f {
	case FormatText:
		return WriteText(w, doc.Report)
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatCSV:
		return WriteCSV(w, doc.Report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
