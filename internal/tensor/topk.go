package tensor

import (
	"fmt"
	"sort"
)

// topEntry pairs an element value with its original column index.
type topEntry struct {
	val float64
	idx int
}

// siftDown restores the min-heap property below position i.
func siftDown(heap []topEntry, i int) {
	n := len(heap)
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < n && heap[l].val < heap[smallest].val {
			smallest = l
		}
		if r < n && heap[r].val < heap[smallest].val {
			smallest = r
		}
		if smallest == i {
			return
		}
		heap[i], heap[smallest] = heap[smallest], heap[i]
		i = smallest
	}
}

// TopK selects the k largest elements of every row of a rank-1 or rank-2
// tensor using a bounded min-heap. It returns two parallel tensors: the
// values (input element kind) and their original column indices (Int64),
// both of shape [rows, k], squeezed to [k] for rank-1 input.
//
// When sorted is set, each row is ordered by value descending. Ties keep
// whatever order the heap produces.
func (t *Tensor) TopK(k int, sorted bool) (*Tensor, *Tensor, error) {
	rows, cols := 0, 0
	switch t.Rank() {
	case 1:
		rows, cols = 1, t.shape[0]
	case 2:
		rows, cols = t.shape[0], t.shape[1]
	default:
		return nil, nil, fmt.Errorf("%w: top-k of rank-%d tensor", ErrUnsupportedOperation, t.Rank())
	}
	if !t.dtype.IsNumeric() {
		return nil, nil, fmt.Errorf("%w: top-k of %s tensor", ErrUnsupportedOperation, t.dtype)
	}
	if k <= 0 || k > cols {
		return nil, nil, fmt.Errorf("%w: k=%d for rows of %d elements", ErrOutOfRange, k, cols)
	}

	outShape := Shape{rows, k}
	if t.Rank() == 1 {
		outShape = Shape{k}
	}
	values, err := New(outShape, t.dtype, t.provider)
	if err != nil {
		return nil, nil, err
	}
	indices, err := New(outShape, Int64, t.provider)
	if err != nil {
		return nil, nil, err
	}

	heap := make([]topEntry, k)
	for r := 0; r < rows; r++ {
		base := t.offset + r*cols
		at := func(c int) float64 {
			f, _ := asFloat64(t.buf.At(base + c))
			return f
		}

		// Seed the heap with the first k elements, then heapify.
		for c := 0; c < k; c++ {
			heap[c] = topEntry{val: at(c), idx: c}
		}
		for i := k/2 - 1; i >= 0; i-- {
			siftDown(heap, i)
		}

		// Every later element that beats the heap minimum replaces the root.
		for c := k; c < cols; c++ {
			if v := at(c); v > heap[0].val {
				heap[0] = topEntry{val: v, idx: c}
				siftDown(heap, 0)
			}
		}

		if sorted {
			sort.Slice(heap, func(i, j int) bool { return heap[i].val > heap[j].val })
		}

		for c, e := range heap {
			v, err := Convert(e.val, t.dtype)
			if err != nil {
				return nil, nil, err
			}
			if err := values.buf.Set(r*k+c, v); err != nil {
				return nil, nil, err
			}
			if err := indices.buf.Set(r*k+c, int64(e.idx)); err != nil {
				return nil, nil, err
			}
		}
	}
	return values, indices, nil
}
