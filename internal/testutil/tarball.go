package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TarEntry is one entry of a test tarball. Entries with a trailing "/" are directories.
type TarEntry struct {
	Name     string
	Body     string
	Linkname string // when set, the entry is a symlink
	Mode     int64
}

// BuildTarball returns a gzip-compressed tar archive shaped like a GitHub repo tarball:
// a PAX global header first, then every entry nested under prefix (e.g. "owner-repo-abc123/").
func BuildTarball(t *testing.T, prefix string, entries []TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:       "pax_global_header",
		Typeflag:   tar.TypeXGlobalHeader,
		PAXRecords: map[string]string{"comment": "abc123"},
		Format:     tar.FormatPAX,
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     prefix,
		Typeflag: tar.TypeDir,
		Mode:     0755,
	}))

	for _, e := range entries {
		mode := e.Mode
		if mode == 0 {
			mode = 0644
		}
		switch {
		case e.Linkname != "":
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name:     prefix + e.Name,
				Typeflag: tar.TypeSymlink,
				Linkname: e.Linkname,
				Mode:     0777,
			}))
		case strings.HasSuffix(e.Name, "/"):
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name:     prefix + e.Name,
				Typeflag: tar.TypeDir,
				Mode:     0755,
			}))
		default:
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name:     prefix + e.Name,
				Typeflag: tar.TypeReg,
				Mode:     mode,
				Size:     int64(len(e.Body)),
			}))
			_, err := tw.Write([]byte(e.Body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}
