package selfupdate

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Update replaces the running binary with the latest release build. Progress
// messages are passed to report as each step starts.
func (c *Checker) Update(ctx context.Context, currentVersion string, report func(string)) error {
	if currentVersion == "(devel)" {
		return ErrDevBuild
	}

	report("Checking for latest version...")
	res, err := c.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return ErrAlreadyLatest
	}
	tag := res.LatestVersion

	asset, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(fmt.Sprintf("Downloading %s...", tag))
	archive, err := c.fetchAsset(ctx, tag, asset)
	if err != nil {
		return err
	}

	report("Extracting binary...")
	binary, err := unpackBinary(archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report("Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceBinary(target, binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(fmt.Sprintf("Updated to %s", tag))
	return nil
}

// Release archives follow goreleaser naming: skillq_<OS>_<arch>.tar.gz, with
// a single universal build on macOS. Windows builds are not published.
func releaseAsset(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "skillq_Darwin_all.tar.gz", nil
	}
	if goos != "linux" {
		return "", fmt.Errorf("no release build for %s", goos)
	}

	var arch string
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "arm64"
	case "386":
		arch = "i386"
	default:
		return "", fmt.Errorf("no release build for linux/%s", goarch)
	}
	return "skillq_Linux_" + arch + ".tar.gz", nil
}

// fetchAsset downloads the release archive for tag and verifies it against
// the checksums.txt published alongside it.
func (c *Checker) fetchAsset(ctx context.Context, tag, asset string) ([]byte, error) {
	base := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)

	archive, err := c.get(ctx, base+"/"+asset)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}
	sums, err := c.get(ctx, base+"/checksums.txt")
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}

	want, ok := checksumFor(sums, asset)
	if !ok {
		return nil, fmt.Errorf("no checksum for %s in checksums.txt", asset)
	}
	got := sha256.Sum256(archive)
	if hex.EncodeToString(got[:]) != want {
		return nil, fmt.Errorf("%w: %s", ErrChecksum, asset)
	}
	return archive, nil
}

func (c *Checker) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// checksumFor finds the sha256 digest recorded for asset in a
// goreleaser-style checksums.txt (one "<hex>  <filename>" pair per line).
func checksumFor(sums []byte, asset string) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset {
			return fields[0], true
		}
	}
	return "", false
}

// unpackBinary pulls the skillq executable out of a release tarball.
func unpackBinary(archive []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, errors.New(`no "skillq" binary in archive`)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == "skillq" {
			return io.ReadAll(tr)
		}
	}
}

// replaceBinary writes the new build next to target and renames it into
// place, keeping the original file mode. Staying within one directory keeps
// the rename atomic.
func replaceBinary(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".skillq-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
