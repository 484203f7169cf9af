//go:build !linux

package cmd

import (
	"fmt"
	"io"
)

func measure(w io.Writer, f func() error) error {
	fmt.Fprintln(w, "perf counters are only available on linux")
	return f()
}
