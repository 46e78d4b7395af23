package fetch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "plain_file", url: "https://example.com/data/series.txt", want: "series.txt"},
		{name: "query_is_ignored", url: "https://example.com/a/b.dat?token=1#top", want: "b.dat"},
		{name: "escaped_segment", url: "http://example.com/some%20file.txt", want: "some file.txt"},
		{name: "trailing_slash_uses_last_dir", url: "https://example.com/files/", want: "files"},
		{name: "root_path_rejected", url: "https://example.com/", wantErr: true},
		{name: "empty_path_rejected", url: "https://example.com", wantErr: true},
		{name: "ftp_rejected", url: "ftp://example.com/a.txt", wantErr: true},
		{name: "no_host_rejected", url: "https:///a.txt", wantErr: true},
		{name: "garbage_rejected", url: "://nope", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := FileNameFromURL(tc.url)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTargetPath(t *testing.T) {
	t.Parallel()

	got, err := TargetPath("cache", "https://example.com/x/y.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("cache", "y.txt"), got)
}
