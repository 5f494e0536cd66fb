package model

import "testing"

func TestPage_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page Page
		want int
	}{
		{"first page", Page{Num: 1, Size: 10}, 0},
		{"second page", Page{Num: 2, Size: 10}, 10},
		{"page size one", Page{Num: 5, Size: 1}, 4},
		{"zero page clamps", Page{Num: 0, Size: 10}, 0},
		{"negative page clamps", Page{Num: -3, Size: 10}, 0},
		{"negative size clamps", Page{Num: 3, Size: -1}, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPage_Empty(t *testing.T) {
	t.Parallel()

	if DefaultPage().Empty() {
		t.Error("default page should not be empty")
	}
	if !(Page{Num: 1, Size: 0}).Empty() {
		t.Error("zero size page should be empty")
	}
	if !(Page{Num: 1, Size: -5}).Empty() {
		t.Error("negative size page should be empty")
	}
}
