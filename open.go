package atmagic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open opens path for sequential reading. Path may be a local file, an
// http(s):// URL, or a gs:// object (client required for the latter, see
// the lazy construction in cmd/fetchgeno). The returned size is -1 when the
// source does not report one.
func Open(path string, client *storage.Client) (io.ReadCloser, int64, error) {
	switch {
	case strings.HasPrefix(path, "gs://"):
		if client == nil {
			return nil, 0, fmt.Errorf("%s: no storage client configured for gs:// paths", path)
		}

		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, fmt.Errorf("tried to split %s into a bucket and an object name but got %d parts", path, len(pathParts))
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])
		attrs, err := handle.Attrs(context.Background())
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		rdr, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, attrs.Size, nil

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		resp, err := http.Get(path)
		if err != nil {
			return nil, 0, pfx.Err(err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("%s: unexpected HTTP status %s", path, resp.Status)
		}

		return resp.Body, resp.ContentLength, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, pfx.Err(err)
	}

	return f, fstat.Size(), nil
}
