package timeline

import (
	"hash/fnv"
	"slices"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// Track is one timeline row: the index range an object lives in and the
// indices where it has effects.
type Track struct {
	ObjectID        string `json:"objectId"`
	StartQueueIndex int    `json:"startQueueIndex"`
	EndQueueIndex   int    `json:"endQueueIndex"`
	// DisplayEndQueueIndex is where the row stops being drawn: the remove
	// index for terminated objects, otherwise at least the display maximum.
	DisplayEndQueueIndex int    `json:"displayEndQueueIndex"`
	Terminated           bool   `json:"terminated"`
	QueueList            []int  `json:"queueList"`
	UniqueColor          string `json:"uniqueColor"`
}

// Tracks is the timeline of one page.
type Tracks struct {
	RowIDs []string `json:"rowIds"`
	Tracks []Track  `json:"tracks"`
}

// DeriveTrack builds the track of o. Objects without effects have no track.
// A terminated track ends at the remove; effects past it are left out.
func DeriveTrack(o domain.Object, maxIndex int) (Track, bool) {
	start, lifeEnd, terminated, ok := Span(o)
	if !ok {
		return Track{}, false
	}

	list := make([]int, 0, len(o.Effects))
	for _, e := range o.Effects {
		if !terminated || e.Index <= lifeEnd {
			list = append(list, e.Index)
		}
	}
	slices.Sort(list)
	list = slices.Compact(list)

	t := Track{
		ObjectID:             o.ID,
		StartQueueIndex:      start,
		EndQueueIndex:        lifeEnd,
		DisplayEndQueueIndex: lifeEnd,
		Terminated:           terminated,
		QueueList:            list,
		UniqueColor:          UniqueColor(o.ID),
	}
	if !terminated {
		t.DisplayEndQueueIndex = max(lifeEnd, maxIndex)
	}
	return t, true
}

// DeriveTracks builds the tracks of every object with effects, in page order.
func DeriveTracks(objects []domain.Object, maxIndex int) Tracks {
	out := Tracks{RowIDs: []string{}, Tracks: []Track{}}
	for _, o := range objects {
		t, ok := DeriveTrack(o, maxIndex)
		if !ok {
			continue
		}
		out.RowIDs = append(out.RowIDs, o.ID)
		out.Tracks = append(out.Tracks, t)
	}
	return out
}

// UniqueColor returns a stable, readable colour for an object id.
func UniqueColor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	hue := float64(sum % 360)
	sat := 0.45 + float64((sum>>9)%30)/100
	val := 0.75 + float64((sum>>17)%20)/100
	return colorful.Hsv(hue, sat, val).Hex()
}

// Cache memoizes page tracks for one document version. Any change of
// version drops every entry.
type Cache struct {
	mu      sync.Mutex
	version uint64
	pages   map[string]Tracks
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{pages: make(map[string]Tracks)}
}

// Get returns the tracks of pageID at version, computing them with derive
// on a miss.
func (c *Cache) Get(version uint64, pageID string, derive func() Tracks) Tracks {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version != c.version {
		c.version = version
		clear(c.pages)
	}
	if t, ok := c.pages[pageID]; ok {
		return t
	}
	t := derive()
	c.pages[pageID] = t
	return t
}
