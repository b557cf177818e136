package dice

// History is a fixed-capacity ring of the most recent roll results.
// When full, adding a result discards the oldest one.
type History struct {
	buf   []Result
	next  int
	count int
}

// NewHistory returns an empty History holding at most size results.
//
// Precondition: size >= 1; smaller values are raised to 1.
func NewHistory(size int) *History {
	return &History{buf: make([]Result, max(size, 1))}
}

// Add records r as the newest entry.
func (h *History) Add(r Result) {
	h.buf[h.next] = r
	h.next = (h.next + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// List returns the retained results, newest first.
//
// Postcondition: len(result) == h.Len().
func (h *History) List() []Result {
	out := make([]Result, h.count)
	for i := range out {
		idx := (h.next - 1 - i + len(h.buf)) % len(h.buf)
		out[i] = h.buf[idx]
	}
	return out
}

// Len returns the number of retained results.
func (h *History) Len() int { return h.count }

// Cap returns the maximum number of retained results.
func (h *History) Cap() int { return len(h.buf) }

// Clear discards every retained result.
func (h *History) Clear() {
	clear(h.buf)
	h.next = 0
	h.count = 0
}
