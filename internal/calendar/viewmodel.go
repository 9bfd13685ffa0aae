package calendar

import (
	"hash/fnv"
	"io"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// DefaultCacheSize is the number of entries kept per ViewModel cache.
const DefaultCacheSize = 64

// Keys hold the *time.Location itself: zones are compared by identity, since
// two zones can share a name and still disagree on offsets. Holding the
// pointer in the key keeps it alive, so an address is never reused while its
// entry is cached.
type partitionKey struct {
	day  int64
	loc  *time.Location
	view View
}

type contentKey struct {
	loc *time.Location
	sum uint64
}

// ViewModel memoizes Partition, Normalize and Project by input content.
// Results are shared between callers and must be treated as read-only.
// Every method returns exactly what the uncached function would.
type ViewModel struct {
	sections    *lru.Cache[partitionKey, []Section]
	normalized  *lru.Cache[contentKey, []CanonicalEvent]
	projections *lru.Cache[contentKey, []PositionedEvent]
}

// NewViewModel creates a view model with size entries per cache.
// A size below 1 disables caching.
func NewViewModel(size int) *ViewModel {
	vm := &ViewModel{}
	if size < 1 {
		return vm
	}
	// lru.New only fails for non-positive sizes.
	vm.sections, _ = lru.New[partitionKey, []Section](size)
	vm.normalized, _ = lru.New[contentKey, []CanonicalEvent](size)
	vm.projections, _ = lru.New[contentKey, []PositionedEvent](size)
	return vm
}

// Partition is the memoized form of Partition.
func (vm *ViewModel) Partition(active time.Time, view View) []Section {
	if vm.sections == nil {
		return Partition(active, view)
	}
	day := dateutil.StartOfDay(active)
	key := partitionKey{day: day.Unix(), loc: day.Location(), view: view}
	if s, ok := vm.sections.Get(key); ok {
		return s
	}
	s := Partition(active, view)
	vm.sections.Add(key, s)
	return s
}

// Normalize is the memoized form of Normalize.
func (vm *ViewModel) Normalize(events []RawEvent, loc *time.Location) []CanonicalEvent {
	if vm.normalized == nil {
		return Normalize(events, loc)
	}
	if loc == nil {
		loc = time.Local
	}
	h := fnv.New64a()
	writeRawEvents(h, events)
	key := contentKey{loc: loc, sum: h.Sum64()}
	if out, ok := vm.normalized.Get(key); ok {
		return out
	}
	out := Normalize(events, loc)
	vm.normalized.Add(key, out)
	return out
}

// Project is the memoized form of Project.
func (vm *ViewModel) Project(section Section, resources []Resource, events []CanonicalEvent) []PositionedEvent {
	if vm.projections == nil {
		return Project(section, resources, events)
	}
	h := fnv.New64a()
	writeField(h, section.Key)
	writeTime(h, section.Start)
	writeTime(h, section.End)
	for _, r := range resources {
		writeField(h, r.ID)
		writeField(h, r.Title)
	}
	writeField(h, "|")
	for _, ev := range events {
		writeTime(h, ev.Start)
		writeTime(h, ev.End)
		writeRawEvent(h, ev.Source)
		writeField(h, ev.ID)
		writeField(h, ev.Title)
		writeField(h, ev.ResourceID)
		writeField(h, ev.Color)
	}
	key := contentKey{loc: section.Start.Location(), sum: h.Sum64()}
	if out, ok := vm.projections.Get(key); ok {
		return out
	}
	out := Project(section, resources, events)
	vm.projections.Add(key, out)
	return out
}

// Purge drops all cached results.
func (vm *ViewModel) Purge() {
	if vm.sections == nil {
		return
	}
	vm.sections.Purge()
	vm.normalized.Purge()
	vm.projections.Purge()
}

// writeTime writes the instant and the zone name and offset in effect at it,
// which together fix the wall-clock date the projection works with.
func writeTime(w io.Writer, t time.Time) {
	name, offset := t.Zone()
	writeField(w, strconv.FormatInt(t.UnixNano(), 10))
	writeField(w, name)
	writeField(w, strconv.Itoa(offset))
}

func writeRawEvents(w io.Writer, events []RawEvent) {
	for _, ev := range events {
		writeRawEvent(w, ev)
	}
}

func writeRawEvent(w io.Writer, ev RawEvent) {
	writeField(w, ev.ID)
	writeField(w, ev.Title)
	writeDateValue(w, ev.Start)
	writeDateValue(w, ev.End)
	writeField(w, ev.ResourceID)
	writeField(w, ev.Color)
}

func writeDateValue(w io.Writer, d DateValue) {
	if d.t.IsZero() {
		writeField(w, "t:"+d.text)
		return
	}
	name, offset := d.t.Zone()
	writeField(w, "v:"+d.t.Format(time.RFC3339Nano)+"@"+d.t.Location().String())
	writeField(w, name)
	writeField(w, strconv.Itoa(offset))
}

// writeField writes s followed by a separator so adjacent fields cannot
// collide ("ab","c" vs "a","bc").
func writeField(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
	_, _ = w.Write([]byte{0})
}
