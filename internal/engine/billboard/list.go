// Package billboard keeps the per-frame list of camera-facing sprites and
// particle fans, ordered by depth for back-to-front drawing.
package billboard

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"
)

// DefaultCapacity is the number of billboards a frame can hold.
const DefaultCapacity = 500

// MaxVertices is the largest polygon a billboard entry can carry.
const MaxVertices = 50

var (
	// ErrListFull is returned when the list has no free slot. Callers should
	// stop adding billboards for the rest of the frame.
	ErrListFull = errors.New("billboard list full")
	// ErrDraining is returned when an insert happens after drawing started.
	ErrDraining = errors.New("billboard list is draining")
)

// State is the list phase within a frame.
type State int

const (
	// Accumulating accepts inserts.
	Accumulating State = iota
	// Draining is entered by Drain and left by Reset.
	Draining
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Draining:
		return "draining"
	default:
		return "unknown"
	}
}

// Opacity selects the blend mode of an entry.
type Opacity int

const (
	Opaque1 Opacity = iota
	Opaque2
	Opaque3
	Transparent
	NoBlend
)

// Vertex is one screen-space vertex of a billboard.
type Vertex struct {
	X, Y, Z  float32 // screen position and post-projection depth
	RHW      float32 // reciprocal of the camera-space depth
	Diffuse  uint32
	Specular uint32
	U, V     float32
}

// Entry is one drawable billboard.
type Entry struct {
	Depth       float32 // camera-space depth used for ordering
	ObjectID    int
	ParentID    int // index into the software billboard list, -1 if synthetic
	Opacity     Opacity
	Texture     uint32 // non-owning texture handle, 0 for untextured
	NumVertices int
	Vertices    [MaxVertices]Vertex
}

// List is a bounded array of entries sorted ascending by depth.
type List struct {
	entries []Entry
	state   State
}

// NewList creates a list holding up to capacity entries. A non-positive
// capacity selects DefaultCapacity.
func NewList(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{entries: make([]Entry, 0, capacity)}
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Cap returns the list capacity.
func (l *List) Cap() int { return cap(l.entries) }

// State returns the current phase.
func (l *List) State() State { return l.state }

// At returns the entry at slot i in ascending depth order.
func (l *List) At(i int) *Entry { return &l.entries[i] }

// InsertByDepth reserves a slot for a billboard at depth and returns its
// index. The new slot follows every entry of equal depth, so equal depths
// keep insertion order. Entries after the slot shift up by one and the
// returned slot is zeroed. A NaN depth is stored as +Inf and sorts
// farthest.
func (l *List) InsertByDepth(depth float32) (int, error) {
	if l.state == Draining {
		return 0, ErrDraining
	}
	n := len(l.entries)
	if n == cap(l.entries) {
		return 0, ErrListFull
	}

	if math32.IsNaN(depth) {
		depth = math32.Inf(1)
	}
	i := sort.Search(n, func(j int) bool { return l.entries[j].Depth > depth })
	l.entries = l.entries[:n+1]
	copy(l.entries[i+1:], l.entries[i:n])
	l.entries[i] = Entry{Depth: depth}
	return i, nil
}

// Drain visits entries farthest first and moves the list to Draining.
func (l *List) Drain(yield func(i int, e *Entry)) {
	l.state = Draining
	for i := len(l.entries) - 1; i >= 0; i-- {
		yield(i, &l.entries[i])
	}
}

// Reset empties the list for the next frame.
func (l *List) Reset() {
	l.entries = l.entries[:0]
	l.state = Accumulating
}
