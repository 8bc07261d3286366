package weather

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// skippedLines is the metadata block between the LOCATION header and the
	// first data row.
	skippedLines = 7
	// scannedFields is how many leading fields of a data row are considered.
	scannedFields = 22
	// maxLineBytes caps how much of one line is kept.
	maxLineBytes = 1 << 20
)

// ErrNotFound is returned when the weather file cannot be opened.
var ErrNotFound = errors.New("weather file not found")

// Column binds a zero-based EPW field index to the channel it feeds.
type Column struct {
	Field   int
	Channel Channel
}

// Columns is the set of data-row fields kept by the parser, in file order.
var Columns = [NumChannels]Column{
	{Field: 6, Channel: DryBulb},
	{Field: 7, Channel: DewPoint},
	{Field: 8, Channel: RelativeHumidity},
	{Field: 13, Channel: GlobalHorizontal},
	{Field: 14, Channel: DirectNormal},
	{Field: 15, Channel: DiffuseHorizontal},
	{Field: 21, Channel: WindSpeed},
}

// Load opens and parses the weather file at path.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads an EPW stream. Reading stops after HoursPerYear data rows or at
// end of input, whichever comes first. Lines longer than maxLineBytes are cut
// at that length; the rest of the line is discarded.
func Parse(r io.Reader) (*Series, error) {
	s := &Series{}
	br := bufio.NewReaderSize(r, 64*1024)

	line := 0
	for s.rows < HoursPerYear {
		text, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read weather data: %w", err)
		}
		line++
		switch {
		case line == 1:
			s.header = parseHeader(text)
		case line > 1+skippedLines:
			s.coerced += s.parseRow(text, s.rows)
			s.rows++
		}
	}
	return s, nil
}

// readLine returns the next line without its terminator, keeping at most
// maxLineBytes of it. io.EOF is returned only when no bytes remain.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	read := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true
		if room := maxLineBytes - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			break
		}
	}
	return strings.TrimRight(string(buf), "\r"), nil
}

func parseHeader(line string) Header {
	var h Header
	for i, field := range strings.Split(line, ",") {
		switch i {
		case 1:
			h.Location = field
		case 5:
			h.StationID = field
		case 6:
			h.Latitude, _ = parseFloat(field)
		case 7:
			h.Longitude, _ = parseFloat(field)
		case 8:
			h.TimeZone = parseIntPrefix(field)
		}
	}
	return h
}

// parseRow stores the mapped fields of one data row at hour h and returns the
// number of tokens that had to be coerced to zero.
func (s *Series) parseRow(line string, h int) int {
	fields := strings.SplitN(line, ",", scannedFields+1)
	coerced := 0
	for _, col := range Columns {
		var token string
		if col.Field < len(fields) {
			token = fields[col.Field]
		}
		v, ok := parseFloat(token)
		if !ok {
			coerced++
		}
		s.data[col.Channel][h] = v
	}
	return coerced
}

// parseFloat parses a finite numeric token, returning 0 and false when it is
// empty, malformed, NaN or infinite.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseIntPrefix reads an optionally signed leading integer, ignoring anything
// after it. "-7.0" yields -7; a token without leading digits yields 0.
func parseIntPrefix(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
