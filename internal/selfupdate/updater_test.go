package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseAsset(t *testing.T) {
	tests := []struct {
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin", "arm64", "skillq_Darwin_all.tar.gz", false},
		{"darwin", "amd64", "skillq_Darwin_all.tar.gz", false},
		{"linux", "amd64", "skillq_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "skillq_Linux_arm64.tar.gz", false},
		{"linux", "386", "skillq_Linux_i386.tar.gz", false},
		{"linux", "mips", "", true},
		{"windows", "amd64", "", true},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := releaseAsset(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksumFor(t *testing.T) {
	sums := []byte(`
abc123  skillq_Linux_x86_64.tar.gz
def456  skillq_Darwin_all.tar.gz

malformed line with too many fields here
`)

	got, ok := checksumFor(sums, "skillq_Linux_x86_64.tar.gz")
	require.True(t, ok)
	assert.Equal(t, "abc123", got)

	_, ok = checksumFor(sums, "skillq_Windows_x86_64.zip")
	assert.False(t, ok)
}

func TestUnpackBinary(t *testing.T) {
	content := []byte("payload")

	got, err := unpackBinary(makeTarGz(t, "skillq", content))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = unpackBinary(makeTarGz(t, "README.md", content))
	assert.Error(t, err)
}

func TestCanonicalVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", canonicalVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", canonicalVersion("v1.2.3"))
	assert.Equal(t, "", canonicalVersion(""))
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abhisek/skillq/releases/latest", r.URL.Path)
		fmt.Fprint(w, `{"tag_name": "v1.4.0"}`)
	}))
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))

	tests := []struct {
		current string
		want    bool
	}{
		{"v1.3.0", true},
		{"v1.4.0", false},
		{"v2.0.0", false},
		{"(devel)", true}, // unparseable current version counts as outdated
	}
	for _, tt := range tests {
		result, err := c.Check(context.Background(), &CheckInput{Version: tt.current})
		require.NoError(t, err, tt.current)
		assert.Equal(t, tt.want, result.UpdateAvailable, tt.current)
		assert.Equal(t, "v1.4.0", result.LatestVersion)
	}
}

func TestUpdate_DevBuild(t *testing.T) {
	c := NewChecker()
	err := c.Update(context.Background(), "(devel)", func(string) {})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func makeTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// releaseServer serves a latest-release response plus archive and checksums
// for a single asset.
func releaseServer(t *testing.T, tag, asset string, archive []byte, sumLine string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/abhisek/skillq/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": %q}`, tag)
	})
	mux.HandleFunc("/abhisek/skillq/releases/download/"+tag+"/"+asset, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})
	mux.HandleFunc("/abhisek/skillq/releases/download/"+tag+"/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, sumLine)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdate_EndToEnd(t *testing.T) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skip("release server only stubs the linux/amd64 asset")
	}

	newBinary := []byte("#!/bin/sh\necho new version\n")
	archive := makeTarGz(t, "skillq", newBinary)
	sum := sha256.Sum256(archive)

	asset, err := releaseAsset("linux", "amd64")
	require.NoError(t, err)

	srv := releaseServer(t, "v1.1.0", asset,
		archive, fmt.Sprintf("%s  %s", hex.EncodeToString(sum[:]), asset))

	target := filepath.Join(t.TempDir(), "skillq")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	c := NewChecker(
		WithBaseURLs(srv.URL, srv.URL),
		WithExecPath(func() (string, error) { return target, nil }),
	)

	var messages []string
	err = c.Update(context.Background(), "v1.0.0", func(msg string) {
		messages = append(messages, msg)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Checking for latest version...",
		"Downloading v1.1.0...",
		"Extracting binary...",
		"Applying update...",
		"Updated to v1.1.0",
	}, messages)

	replaced, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newBinary, replaced)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestUpdate_ChecksumMismatch(t *testing.T) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skip("release server only stubs the linux/amd64 asset")
	}

	archive := makeTarGz(t, "skillq", []byte("new"))
	asset, err := releaseAsset("linux", "amd64")
	require.NoError(t, err)

	srv := releaseServer(t, "v1.1.0", asset,
		archive, fmt.Sprintf("%064d  %s", 0, asset))

	target := filepath.Join(t.TempDir(), "skillq")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	c := NewChecker(
		WithBaseURLs(srv.URL, srv.URL),
		WithExecPath(func() (string, error) { return target, nil }),
	)

	err = c.Update(context.Background(), "v1.0.0", func(string) {})
	assert.ErrorIs(t, err, ErrChecksum)

	untouched, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), untouched)
}
