package main

import (
	"strings"
	"testing"
	"time"
)

func TestMapsPreviewURL(t *testing.T) {
	got := mapsPreviewURL(10.5, -20.25)
	want := "https://www.google.com/maps?z=14&q=loc:10.5,-20.25"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestOutcomeLine(t *testing.T) {
	line := outcomeLine("a.jpg", 1525363144, 10.5, -20.25, time.UTC)

	if !strings.HasPrefix(line, "[a.jpg] ") {
		t.Fatalf("line must start with the photo path: %q", line)
	}
	if !strings.Contains(line, "(10.5, -20.25)") {
		t.Fatalf("line must carry the coordinate: %q", line)
	}
	if !strings.Contains(line, "https://www.google.com/maps?z=14&q=loc:10.5,-20.25") {
		t.Fatalf("line must carry the preview link: %q", line)
	}
}
