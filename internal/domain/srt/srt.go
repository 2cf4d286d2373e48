// Package srt renders transcript segments as SubRip documents and parses
// them back. The encoder is a formatter, not a validator: segments are
// emitted in input order even when they overlap or run backwards in time.
package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrun5/subburn/internal/types"
)

// Encode renders segments as SubRip text. Cues are renumbered from 1 by
// position, timecodes carry millisecond precision with fractional
// milliseconds truncated, and each block ends with one blank line. An empty
// segment slice encodes to the empty string.
func Encode(segs []types.Segment) string {
	var b strings.Builder
	for i, s := range segs {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(formatTimecode(dur(s.Start)))
		b.WriteString(" --> ")
		b.WriteString(formatTimecode(dur(s.End)))
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(s.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Parse decodes a SubRip document. Cue index lines are used for block
// framing only; output order follows document order. Accepts \r\n line
// endings and any number of trailing blank lines.
func Parse(doc string) ([]types.Segment, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	var segs []types.Segment
	for _, block := range strings.Split(doc, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("srt: malformed cue block %q", block)
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			return nil, fmt.Errorf("srt: bad cue index %q: %w", lines[0], err)
		}
		start, end, err := parseTimecodeLine(lines[1])
		if err != nil {
			return nil, err
		}
		segs = append(segs, types.Segment{
			Start: start.Seconds(),
			End:   end.Seconds(),
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return segs, nil
}

// formatTimecode renders a duration as HH:MM:SS,mmm. Sub-millisecond
// precision is truncated, not rounded; negative durations clamp to zero.
func formatTimecode(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func parseTimecodeLine(line string) (start, end time.Duration, err error) {
	parts := strings.Split(line, " --> ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("srt: bad timecode line %q", line)
	}
	if start, err = parseTimecode(parts[0]); err != nil {
		return 0, 0, err
	}
	if end, err = parseTimecode(parts[1]); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimecode(s string) (time.Duration, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("srt: bad timecode %q: %w", s, err)
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// dur converts float seconds to a duration, rounding at nanosecond
// precision. Truncating here instead would pull millisecond-exact inputs
// like 1.001 (stored as 1.000999...) down a whole millisecond.
func dur(sec float64) time.Duration { return time.Duration(math.Round(sec * float64(time.Second))) }
