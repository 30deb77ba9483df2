package opml

import (
	"testing"

	"github.com/mwren/radiola/internal/domain"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="1">
  <head><title>Browse</title></head>
  <body>
    <outline type="link" text="Local Radio" URL="http://opml.radiotime.com/Browse.ashx?c=local"/>
    <outline type="audio" text="NPR Program Stream" URL="http://npr.streamguys1.com/live.mp3"/>
    <outline text="By Genre">
      <outline type="link" text="Jazz" URL="http://opml.radiotime.com/Browse.ashx?id=g2"/>
      <outline type="audio" text="WBGO 88.3" URL="http://wbgo.streamguys.net/wbgo96"/>
    </outline>
    <outline type="audio" URL="http://no-text.example/stream"/>
  </body>
</opml>`

func TestParseClassifiesAndPreservesOrder(t *testing.T) {
	listing, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []struct {
		kind  domain.NodeKind
		title string
	}{
		{domain.KindDirectory, "Local Radio"},
		{domain.KindStream, "NPR Program Stream"},
		{domain.KindDirectory, "By Genre"},
	}
	if len(listing) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(listing), len(want))
	}
	for i, w := range want {
		if listing[i].Kind != w.kind {
			t.Errorf("node %d: kind = %v, want %v", i, listing[i].Kind, w.kind)
		}
		if listing[i].Title != w.title {
			t.Errorf("node %d: title = %q, want %q", i, listing[i].Title, w.title)
		}
	}
}

func TestParseInlineChildren(t *testing.T) {
	listing, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	genre := listing[2]
	if !genre.HasInlineListing() {
		t.Fatal("expected inline children for URL-less outline")
	}
	if genre.URL != "" {
		t.Errorf("inline directory has URL %q", genre.URL)
	}
	if len(genre.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(genre.Children))
	}
	if genre.Children[0].Kind != domain.KindDirectory || genre.Children[0].Title != "Jazz" {
		t.Errorf("child 0 = %+v", genre.Children[0])
	}
	if genre.Children[1].Kind != domain.KindStream || genre.Children[1].Title != "WBGO 88.3" {
		t.Errorf("child 1 = %+v", genre.Children[1])
	}
}

func TestParseUpgradesURLs(t *testing.T) {
	listing, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, n := range append(listing, listing[2].Children...) {
		if n.URL == "" {
			continue
		}
		if got := n.URL[:8]; got != "https://" {
			t.Errorf("%q: URL %q not upgraded to https", n.Title, n.URL)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("<opml><body><outline")); err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestParseEmptyBody(t *testing.T) {
	listing, err := Parse([]byte(`<opml><body></body></opml>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(listing) != 0 {
		t.Fatalf("got %d nodes, want 0", len(listing))
	}
}

func TestUpgradeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://example.com/x", "https://example.com/x"},
		{"https://example.com/x", "https://example.com/x"},
		{"rtsp://example.com/x", "rtsp://example.com/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := UpgradeURL(tt.in); got != tt.want {
			t.Errorf("UpgradeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
