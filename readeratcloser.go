package fastqcpipe

import "io"

// ReaderAtCloser is satisfied by *os.File and by GSReaderAtCloser, so lane
// sources can be streamed and sniffed the same way wherever they live.
type ReaderAtCloser interface {
	io.Reader
	io.ReaderAt
	io.Closer
}
