package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{name: "empty", in: PageRequest{}, wantPage: 1, wantPageSize: DefaultPageSize, wantOffset: 0},
		{name: "third_page", in: PageRequest{Page: 3, PageSize: 10}, wantPage: 3, wantPageSize: 10, wantOffset: 20},
		{name: "capped", in: PageRequest{Page: 1, PageSize: 1000}, wantPage: 1, wantPageSize: MaxPageSize, wantOffset: 0},
		{name: "negative_page", in: PageRequest{Page: -2, PageSize: 5}, wantPage: 1, wantPageSize: 5, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantPageSize || p.Offset() != tt.wantOffset {
				t.Errorf("got page=%d size=%d offset=%d", p.Page, p.PageSize, p.Offset())
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("partial_last_page", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
		if resp.TotalPages != 3 || !resp.HasNext {
			t.Errorf("expected 3 pages with a next page, got %+v", resp)
		}
	})

	t.Run("last_page", func(t *testing.T) {
		resp := NewPageResponse([]int{5}, 3, 2, 5)
		if resp.HasNext {
			t.Error("expected no next page")
		}
	})

	t.Run("nil_data_is_empty", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 || resp.TotalPages != 0 {
			t.Errorf("unexpected empty page %+v", resp)
		}
	})
}
