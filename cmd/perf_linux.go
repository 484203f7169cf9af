//go:build linux

package cmd

import (
	"fmt"
	"io"

	perf "github.com/hodgesds/perf-utils"
)

// measure runs f once under a CPU instruction counter
func measure(w io.Writer, f func() error) (err error) {
	var (
		ran  bool
		ferr error
		pv   *perf.ProfileValue
	)
	pv, err = perf.CPUInstructions(func() error {
		ran = true
		ferr = f()
		return ferr
	})
	switch {
	case ferr != nil:
		return ferr
	case err == nil:
		fmt.Fprintf(w, "CPU instructions: %d (enabled %d ns, running %d ns)\n",
			pv.Value, pv.TimeEnabled, pv.TimeRunning)
		return
	}
	// Counters are often unavailable without CAP_PERFMON
	fmt.Fprintf(w, "perf counters unavailable: %v\n", err)
	if ran {
		return nil
	}
	return f()
}
