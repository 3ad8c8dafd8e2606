//go:build !linux

package threads

import "runtime"

func Available() int {
	return runtime.NumCPU()
}
