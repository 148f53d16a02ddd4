package main

import (
	"fmt"
	"testing"
	"time"
)

func TestClampTimeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{time.Second, minCheckTimeout},
		{minCheckTimeout, minCheckTimeout},
		{10 * time.Second, 10 * time.Second},
		{maxCheckTimeout, maxCheckTimeout},
		{time.Minute, maxCheckTimeout},
	}

	for _, tt := range tests {
		if got := clampTimeout(tt.in); got != tt.want {
			t.Errorf("clampTimeout(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCapPages(t *testing.T) {
	pages := make([]string, 150)
	for i := range pages {
		pages[i] = fmt.Sprintf("https://example.com/p%d", i)
	}

	capped := capPages(pages, maxCheckPages)
	if len(capped) != maxCheckPages {
		t.Errorf("capPages() kept %d pages, want %d", len(capped), maxCheckPages)
	}
	if capped[0] != pages[0] {
		t.Error("capPages() should keep the leading pages")
	}

	small := []string{"https://example.com/"}
	if got := capPages(small, maxCheckPages); len(got) != 1 {
		t.Errorf("capPages() on a small list kept %d pages, want 1", len(got))
	}
}
