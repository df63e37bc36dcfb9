package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2026-03-14T09:30:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestAlignRange(t *testing.T) {
	from := time.Date(2026, 3, 14, 9, 37, 12, 0, time.UTC)
	to := time.Date(2026, 3, 14, 18, 2, 55, 0, time.UTC)
	af, at := AlignRange(from, to, "1h")
	if af.Minute() != 0 || af.Second() != 0 {
		t.Fatalf("from not aligned: %v", af)
	}
	if at.Hour() != 18 || at.Minute() != 0 {
		t.Fatalf("to not aligned: %v", at)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("0.85", 0); got != 0.85 {
		t.Fatalf("expected 0.85, got %v", got)
	}
	if got := ParseFloatDefault("not-a-number", 50); got != 50 {
		t.Fatalf("expected default, got %v", got)
	}
}
