package tui

import (
	"reflect"
	"testing"
)

func TestFilterTitles(t *testing.T) {
	titles := []string{"BBC World Service", "NPR News", "Jazz24", "WBGO Newark"}

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2, 3}},
		{"npr", []int{1}},
		{"jazz", []int{2}},
		{"news", []int{1}},
		{"zzz", []int{}},
	}

	for _, tt := range tests {
		got := filterTitles(tt.query, titles)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("filterTitles(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterTitlesIsCaseInsensitive(t *testing.T) {
	titles := []string{"KEXP Seattle"}
	if got := filterTitles("kexp", titles); len(got) != 1 || got[0] != 0 {
		t.Fatalf("filterTitles = %v", got)
	}
}
