package tui

import "github.com/goliatone/go-kroviz/pkg/ro"

// History is the stack of links the navigator has followed.
type History struct {
	links []ro.Link
}

// Push records a followed link.
func (h *History) Push(link ro.Link) {
	h.links = append(h.links, link)
}

// Pop removes and returns the most recent link.
func (h *History) Pop() (ro.Link, bool) {
	if len(h.links) == 0 {
		return ro.Link{}, false
	}
	last := h.links[len(h.links)-1]
	h.links = h.links[:len(h.links)-1]
	return last, true
}

// Current returns the most recently followed link.
func (h *History) Current() (ro.Link, bool) {
	if len(h.links) == 0 {
		return ro.Link{}, false
	}
	return h.links[len(h.links)-1], true
}

// Len reports how many links are recorded.
func (h *History) Len() int {
	return len(h.links)
}
