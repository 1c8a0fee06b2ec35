package tui

import "github.com/hay-kot/alertkit/internal/core/dom"

// Rect is a screen rectangle in cells. Width and height are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region maps a rectangle to the element rendered there.
type Region struct {
	Rect    Rect
	Element *dom.Element
}

// HitMap resolves screen coordinates to elements. Regions added later take
// priority, so parents are added before their children.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers el at r.
func (h *HitMap) Add(el *dom.Element, r Rect) {
	h.regions = append(h.regions, Region{Rect: r, Element: el})
}

// Test returns the topmost element at (x, y), or nil.
func (h *HitMap) Test(x, y int) *dom.Element {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return h.regions[i].Element
		}
	}
	return nil
}

// Clear removes every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// RectOf returns the rectangle registered for el.
func (h *HitMap) RectOf(el *dom.Element) (Rect, bool) {
	for _, r := range h.regions {
		if r.Element == el {
			return r.Rect, true
		}
	}
	return Rect{}, false
}
