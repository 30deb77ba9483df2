package domain

// NodeKind classifies a directory entry. The kind is decided once at parse
// time and never re-inferred downstream.
type NodeKind int

const (
	// KindDirectory is a sub-directory: entering it yields another Listing.
	KindDirectory NodeKind = iota
	// KindStream is a playable audio stream.
	KindStream
)

// String returns a human-readable kind name
func (k NodeKind) String() string {
	if k == KindStream {
		return "stream"
	}
	return "directory"
}

// Node is one entry in the remote directory tree.
//
// For a Directory node URL is the OPML document to fetch on expansion; for a
// Stream node it is the playable audio URL. Directory nodes are never
// playable and Stream nodes have no children.
type Node struct {
	Kind  NodeKind `json:"kind"`
	Title string   `json:"title"`
	URL   string   `json:"url,omitempty"`

	// Children holds inline sub-outlines for directories that embed their
	// listing in the parent document instead of linking to one. Entering
	// such a node requires no fetch.
	Children []Node `json:"children,omitempty"`
}

// IsDirectory reports whether the node is a sub-directory
func (n Node) IsDirectory() bool { return n.Kind == KindDirectory }

// IsStream reports whether the node is a playable stream
func (n Node) IsStream() bool { return n.Kind == KindStream }

// HasInlineListing reports whether the node carries its children inline
func (n Node) HasInlineListing() bool { return len(n.Children) > 0 }

// DisplayTitle returns the title with a trailing slash for directories
func (n Node) DisplayTitle() string {
	if n.IsDirectory() {
		return n.Title + "/"
	}
	return n.Title
}

// Listing is the ordered sequence of nodes produced by parsing one OPML
// document. Display order is document order.
type Listing []Node

// Favorite is a user-saved stream. It is a value copy of the node it was
// created from, not a reference into the tree: the tree is transient while
// favorites survive across sessions and upstream restructuring. Its position
// in the store's slice is its order.
type Favorite struct {
	Title string `xml:"text,attr"`
	URL   string `xml:"URL,attr"`
}
