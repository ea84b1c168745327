package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/handler"
	"github.com/philipp01105/nlogtree/logger"
)

// deepLogger registers a logger depth levels below the root
func deepLogger(b *testing.B, prefix string, depth int) *logger.Logger {
	b.Helper()
	segments := make([]string, depth)
	for i := range segments {
		segments[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return logger.MustGet(strings.Join(segments, "."))
}

func withMode(b *testing.B, hierarchical bool) {
	b.Helper()
	prev := logger.Hierarchical()
	logger.SetHierarchical(hierarchical)
	b.Cleanup(func() { logger.SetHierarchical(prev) })
}

func BenchmarkGet_Existing(b *testing.B) {
	deepLogger(b, "get", 4)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.MustGet("get0.get1.get2.get3")
	}
}

func BenchmarkGet_Parallel(b *testing.B) {
	deepLogger(b, "pget", 4)
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.MustGet("pget0.pget1.pget2.pget3")
		}
	})
}

func BenchmarkEnabled(b *testing.B) {
	for _, depth := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("global/depth=%d", depth), func(b *testing.B) {
			withMode(b, false)
			l := deepLogger(b, fmt.Sprintf("eg%d_", depth), depth)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Enabled(core.DebugLevel)
			}
		})
		b.Run(fmt.Sprintf("hierarchical/depth=%d", depth), func(b *testing.B) {
			withMode(b, true)
			l := deepLogger(b, fmt.Sprintf("eh%d_", depth), depth)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Enabled(core.DebugLevel)
			}
		})
	}
}

func BenchmarkPropagation(b *testing.B) {
	for _, depth := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			withMode(b, true)
			l := deepLogger(b, fmt.Sprintf("prop%d_", depth), depth)
			sub := handler.Attach(logger.Root(), newNoopHandler(), nil)
			defer sub.Cancel()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info("propagated")
			}
		})
	}
}

func BenchmarkFanOut(b *testing.B) {
	for _, subscribers := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("subscribers=%d", subscribers), func(b *testing.B) {
			l, err := logger.NewDetached("fanout")
			if err != nil {
				b.Fatal(err)
			}
			h := newNoopHandler()
			for i := 0; i < subscribers; i++ {
				handler.Attach(l, h, nil)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info("fan out")
			}
		})
	}
}

func BenchmarkStackCapture(b *testing.B) {
	prev := logger.StackTraceLevel()
	logger.SetStackTraceLevel(core.ErrorLevel)
	b.Cleanup(func() { logger.SetStackTraceLevel(prev) })

	l, err := logger.NewDetached("stack")
	if err != nil {
		b.Fatal(err)
	}
	sub := handler.Attach(l, newNoopHandler(), nil)
	defer sub.Cancel()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Error("with stack")
	}
}
