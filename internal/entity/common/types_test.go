package common

import (
	"testing"
)

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
		wantErr  bool
	}{
		{
			name:     "nil value",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "json text",
			input:    `["tomato","basil"]`,
			expected: []string{"tomato", "basil"},
		},
		{
			name:     "json bytes",
			input:    []byte(`["mozzarella"]`),
			expected: []string{"mozzarella"},
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			err := a.Scan(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(a) != len(tt.expected) {
				t.Fatalf("expected %d items, got %d", len(tt.expected), len(a))
			}
			for i := range tt.expected {
				if a[i] != tt.expected[i] {
					t.Errorf("item %d: expected %q, got %q", i, tt.expected[i], a[i])
				}
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int
		pageSize   int
		wantPages  int64
	}{
		{name: "empty result set", totalItems: 0, page: 1, pageSize: 10, wantPages: 0},
		{name: "exact division", totalItems: 40, page: 2, pageSize: 10, wantPages: 4},
		{name: "remainder rounds up", totalItems: 41, page: 1, pageSize: 10, wantPages: 5},
		{name: "single item", totalItems: 1, page: 1, pageSize: 100, wantPages: 1},
		{name: "defaults applied", totalItems: 5, page: 0, pageSize: 0, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.totalItems, tt.page, tt.pageSize)
			if p.TotalPages != tt.wantPages {
				t.Errorf("expected %d total pages, got %d", tt.wantPages, p.TotalPages)
			}
			if p.TotalItems != tt.totalItems {
				t.Errorf("expected %d total items, got %d", tt.totalItems, p.TotalItems)
			}
			if p.Page <= 0 || p.PageSize <= 0 {
				t.Errorf("expected normalised page values, got page=%d pageSize=%d", p.Page, p.PageSize)
			}
		})
	}
}
