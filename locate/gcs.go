package locate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

// findInBucket lists every object under the gs:// root and keeps the ones
// whose base name matches pattern.
func (l *Locator) findInBucket(root, pattern string) ([]string, error) {
	if l.Storage == nil {
		return nil, fmt.Errorf("%s: no Google Storage client was configured", root)
	}

	bucketName, prefix, err := fastqcpipe.SplitGSPath(root)
	if err != nil {
		return nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	ctx := l.Context
	if ctx == nil {
		ctx = context.Background()
	}

	matches := make([]string, 0, 4)
	it := l.Storage.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("listing %s: %w", root, err))
		}

		// Skip directory placeholders
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		ok, err := path.Match(pattern, path.Base(attrs.Name))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, fmt.Sprintf("gs://%s/%s", bucketName, attrs.Name))
		}
	}

	return matches, nil
}
