package models

import "testing"

// TestNormalizePage verifies defaulting and clamping of page and limit.
func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "passthrough", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
		{name: "negative page", page: -2, limit: 5, wantPage: 1, wantLimit: 5},
		{name: "limit above max", page: 1, limit: 500, wantPage: 1, wantLimit: 100},
		{name: "negative limit", page: 1, limit: -4, wantPage: 1, wantLimit: 1},
		{name: "bounds", page: 1, limit: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

// TestNewPagination verifies page count and offset math.
func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		wantPages  int
		wantOffset int
	}{
		{name: "empty", page: 1, limit: 10, total: 0, wantPages: 0, wantOffset: 0},
		{name: "exact fit", page: 1, limit: 10, total: 10, wantPages: 1, wantOffset: 0},
		{name: "partial last page", page: 2, limit: 10, total: 15, wantPages: 2, wantOffset: 10},
		{name: "out of range page", page: 9, limit: 10, total: 15, wantPages: 2, wantOffset: 80},
		{name: "limit one", page: 4, limit: 1, total: 7, wantPages: 7, wantOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.Pages != tt.wantPages {
				t.Errorf("pages: got %d, want %d", p.Pages, tt.wantPages)
			}
			if p.Total != tt.total {
				t.Errorf("total: got %d, want %d", p.Total, tt.total)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}
