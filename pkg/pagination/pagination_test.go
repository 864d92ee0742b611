package pagination

import "testing"

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero values fall back to defaults", PaginationParams{}, 1, 15},
		{"negative page is clamped", PaginationParams{Page: -3, PerPage: 20}, 1, 20},
		{"per_page above cap is clamped", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid values pass through", PaginationParams{Page: 3, PerPage: 25}, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, p.Page)
			}
			if p.PerPage != tt.wantPerPage {
				t.Errorf("expected per_page %d, got %d", tt.wantPerPage, p.PerPage)
			}
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 15}
	if got := p.Offset(); got != 30 {
		t.Errorf("expected offset 30, got %d", got)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 15, 31)

	if p.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", p.TotalPages)
	}
	if !p.HasNext {
		t.Error("expected HasNext on a middle page")
	}
	if !p.HasPrev {
		t.Error("expected HasPrev on a middle page")
	}

	last := NewPagination(3, 15, 31)
	if last.HasNext {
		t.Error("expected no next page past the last")
	}

	empty := NewPagination(1, 15, 0)
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 total pages for an empty set, got %d", empty.TotalPages)
	}
	if empty.HasPrev {
		t.Error("expected no previous page on page 1")
	}
}
