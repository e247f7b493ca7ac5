package pool

import "testing"

func TestBufferPoolResetsLength(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	*buf = append(*buf, "hello"...)
	bp.Put(buf)

	again := bp.Get()
	if len(*again) != 0 {
		t.Errorf("expected empty buffer from pool, got len %d", len(*again))
	}
	if cap(*again) < 16 {
		t.Errorf("expected capacity >= 16, got %d", cap(*again))
	}
}
