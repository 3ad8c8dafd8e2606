package threads

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available counts the CPUs this process may run on, which can be fewer than
// the host has when an affinity mask or cgroup cpuset is in place.
func Available() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}

	if n := set.Count(); n > 0 {
		return n
	}

	return runtime.NumCPU()
}
