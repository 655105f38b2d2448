package todo

import (
	"fmt"
	"testing"
	"time"
)

func benchList(b *testing.B, n int) *List {
	b.Helper()
	l := NewList(WithClock(fixedClock()))
	for i := 0; i < n; i++ {
		var due *time.Time
		if i%2 == 0 {
			d := testNow.Add(time.Duration(i) * time.Hour)
			due = &d
		}
		if _, err := l.Add(fmt.Sprintf("Task %d", i), due); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
	return l
}

// BenchmarkRenderAll benchmarks rendering a 100-task list.
func BenchmarkRenderAll(b *testing.B) {
	l := benchList(b, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, t := range l.ViewAll() {
			_ = l.Render(t)
		}
	}
}

// BenchmarkDeserialize benchmarks rebuilding a 100-task list from records.
func BenchmarkDeserialize(b *testing.B) {
	records := benchList(b, 100).Serialize()
	l := NewList()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := l.Deserialize(records); err != nil {
			b.Fatalf("Deserialize failed: %v", err)
		}
	}
}
