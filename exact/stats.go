package exact

import (
	"fmt"
	"strings"
	"time"
)

const (
	stepPrimes = iota
	stepEssentials
	stepTable
	stepMincov
	stepSparse
	nbSteps
)

var stepNames = [nbSteps]string{"PRIMES", "ESSENTIALS", "PI-TABLE", "MINCOV", "SPARSE"}

// Stats accumulates, for each step of the minimization, the number of times
// it was run and the total time spent in it.
type Stats struct {
	Calls [nbSteps]int
	Time  [nbSteps]time.Duration
}

func (st *Stats) add(step int, d time.Duration) {
	st.Calls[step]++
	st.Time[step] += d
}

func (st Stats) String() string {
	var sb strings.Builder
	for i, name := range stepNames {
		if st.Calls[i] == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%-11s %4d call(s) %v\n", name, st.Calls[i], st.Time[i])
	}
	return sb.String()
}
