// Package opml fetches and parses OPML directory documents into listings of
// directory and stream nodes.
package opml

import (
	"encoding/xml"
	"strings"

	"github.com/mwren/radiola/internal/domain"
)

// outline mirrors one <outline> element. Attribute names follow the
// radiotime OPML dialect: "text" is the display title, "URL" points at
// either another OPML document (type="link") or an audio stream
// (type="audio").
type outline struct {
	Text     string    `xml:"text,attr"`
	Type     string    `xml:"type,attr"`
	URL      string    `xml:"URL,attr"`
	Outlines []outline `xml:"outline"`
}

type document struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []outline `xml:"outline"`
	} `xml:"body"`
}

// Parse decodes an OPML document into a Listing. Outlines without a text
// attribute are skipped. Classification happens here, once: an outline with
// type="audio" and a URL is a stream, an outline with a URL and any other
// type is a directory link, and an outline with no URL is a directory whose
// children are embedded inline.
func Parse(data []byte) (domain.Listing, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return convert(doc.Body.Outlines), nil
}

func convert(outlines []outline) domain.Listing {
	listing := make(domain.Listing, 0, len(outlines))
	for _, o := range outlines {
		if o.Text == "" {
			continue
		}
		switch {
		case o.Type == "audio" && o.URL != "":
			listing = append(listing, domain.Node{
				Kind:  domain.KindStream,
				Title: o.Text,
				URL:   UpgradeURL(o.URL),
			})
		case o.URL != "":
			listing = append(listing, domain.Node{
				Kind:  domain.KindDirectory,
				Title: o.Text,
				URL:   UpgradeURL(o.URL),
			})
		default:
			listing = append(listing, domain.Node{
				Kind:     domain.KindDirectory,
				Title:    o.Text,
				Children: convert(o.Outlines),
			})
		}
	}
	return listing
}

// UpgradeURL rewrites plain http URLs to https. The directory provider
// redirects everything anyway and some stream hosts reject http outright.
func UpgradeURL(url string) string {
	if strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http://")
	}
	return url
}
