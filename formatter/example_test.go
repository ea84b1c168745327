package formatter_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{})

	rec := &core.Record{
		Time:       time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:      core.InfoLevel,
		LoggerName: "app",
		Message:    "hello world",
	}

	out, _ := f.Format(rec)
	fmt.Print(string(out))
	// Output:
	// 2026-01-15T12:00:00Z [INFO] app: hello world
}

func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{})

	rec := &core.Record{
		Time:       time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:      core.WarnLevel,
		LoggerName: "app.http",
		Message:    "slow request",
	}

	out, _ := f.Format(rec)
	fmt.Println(strings.Contains(string(out), `"level":"WARN"`))
	fmt.Println(strings.Contains(string(out), `"logger":"app.http"`))
	// Output:
	// true
	// true
}
