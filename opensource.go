package fastqcpipe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gsPrefix = "gs://"

// IsGSPath reports whether path names a Google Storage object or prefix.
func IsGSPath(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// SplitGSPath splits gs://bucket/some/object into its bucket and object name.
// The object name may be empty when path names a whole bucket.
func SplitGSPath(path string) (bucket, object string, err error) {
	if !IsGSPath(path) {
		return "", "", fmt.Errorf("%s is not a gs:// path", path)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if pathParts[0] == "" {
		return "", "", fmt.Errorf("%s does not name a bucket", path)
	}
	if len(pathParts) == 1 {
		return pathParts[0], "", nil
	}

	return pathParts[0], pathParts[1], nil
}

// OpenSource opens a lane file for reading. Paths that start with gs:// are
// read from Google Storage through client; everything else is a local file.
// The size of the source is returned alongside the handle.
func OpenSource(ctx context.Context, path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if IsGSPath(path) {
		if client == nil {
			return nil, 0, fmt.Errorf("%s: no Google Storage client was configured", path)
		}

		bucketName, pathName, err := SplitGSPath(path)
		if err != nil {
			return nil, 0, err
		}
		if pathName == "" {
			return nil, 0, fmt.Errorf("%s does not name an object", path)
		}

		wrappedHandle := &GSReaderAtCloser{
			// Lane files are copied byte for byte, so skip decompressive transcoding
			ObjectHandle: client.Bucket(bucketName).Object(pathName).ReadCompressed(true),
			Context:      ctx,
		}

		// Make a hard call to get the filesize
		attrs, err := wrappedHandle.ObjectHandle.Attrs(ctx)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return wrappedHandle, attrs.Size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}
