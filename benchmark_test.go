package hlc

import (
	"strconv"
	"testing"
	"time"
)

func BenchmarkIncrement(b *testing.B) {
	c := newTestClock(b, newFakeWallClock(baseTime))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.IncrementAt("n1", baseTime.Add(time.Duration(i))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIncrementParallelNodes(b *testing.B) {
	c, err := NewClock(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		node := strconv.Itoa(int(time.Now().UnixNano()))
		for pb.Next() {
			c.IncrementOrNow(node)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Parse("2024-01-15T10:30:00.123Z-001A-node-alpha"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	ts := MustParse("2024-01-15T10:30:00.123Z-001A-node-alpha")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ts.String()
	}
}

func BenchmarkSealOpen(b *testing.B) {
	wall := newFakeWallClock(baseTime)
	sender := NewStamper(newTestClock(b, wall))
	receiver := NewStamper(newTestClock(b, wall))
	payload := []byte("payload")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wall.Advance(time.Microsecond)
		data, _, err := sender.Seal("alpha", payload)
		if err != nil {
			b.Fatal(err)
		}
		if _, _, err := receiver.Open("beta", data); err != nil {
			b.Fatal(err)
		}
	}
}
