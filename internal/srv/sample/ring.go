package sample

// Ring is a bounded history of samples, the oldest one is dropped when full.
type Ring struct {
	buf   []float64
	pos   int
	count int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		buf: make([]float64, capacity),
	}
}

func (r *Ring) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Newest returns a copy of the stored samples, most recent first.
func (r *Ring) Newest() []float64 {
	result := make([]float64, r.count)
	idx := r.pos
	for i := range result {
		idx = (idx - 1 + len(r.buf)) % len(r.buf)
		result[i] = r.buf[idx]
	}
	return result
}

func (r *Ring) Len() int {
	return r.count
}
