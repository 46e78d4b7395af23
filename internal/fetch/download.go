package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tabplot/internal/platform"
)

// Transfer constants
const (
	PartFileSuffix   = ".part"
	ProgressInterval = 250 * time.Millisecond
)

// Result describes the outcome of DownloadFile.
type Result struct {
	Path   string // local file path
	Cached bool   // true when the file already existed and nothing was fetched
	Bytes  int64  // bytes written by this call, 0 when cached
}

// ProgressFunc receives bytes written so far and the total size (-1 if unknown).
type ProgressFunc func(done, total int64)

// DownloadFile stores rawURL as dir/<last path segment>. The directory is
// created when missing. An existing file is returned as-is without touching
// the network.
func (s *Service) DownloadFile(ctx context.Context, dir, rawURL string, progress ProgressFunc) (*Result, error) {
	target, err := TargetPath(dir, rawURL)
	if err != nil {
		return nil, err
	}

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	if info, err := os.Stat(target); err == nil {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s", ErrNotAFile, target)
		}
		s.log.WithField("path", target).Info("file already present, skipping fetch")
		return &Result{Path: target, Cached: true}, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	log := s.log.WithFields(logrus.Fields{"url": rawURL, "path": target})
	log.Info("fetch started")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, rawURL, resp.StatusCode)
	}

	written, err := writeAtomically(target, resp.Body, resp.ContentLength, progress)
	if err != nil {
		return nil, err
	}

	log.WithField("bytes", written).Info("fetch completed")
	return &Result{Path: target, Bytes: written}, nil
}

// writeAtomically streams body into a temporary file next to target and
// renames it into place once the copy succeeded.
func writeAtomically(target string, body io.Reader, total int64, progress ProgressFunc) (int64, error) {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*"+PartFileSuffix)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	pw := &progressWriter{total: total, report: progress}
	written, copyErr := io.Copy(io.MultiWriter(tmp, pw), body)
	closeErr := tmp.Close()

	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr == nil && total >= 0 && written != total {
		copyErr = fmt.Errorf("short body: got %d of %d bytes", written, total)
	}
	if copyErr != nil {
		_ = os.Remove(tmpPath)
		return written, fmt.Errorf("failed to write %s: %w", target, copyErr)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return written, fmt.Errorf("failed to move %s into place: %w", target, err)
	}

	pw.flush()
	return written, nil
}

// progressWriter counts bytes and reports them at most every ProgressInterval.
type progressWriter struct {
	done       int64
	total      int64
	lastReport time.Time
	report     ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.done += int64(len(b))
	if p.report != nil && time.Since(p.lastReport) >= ProgressInterval {
		p.lastReport = time.Now()
		p.report(p.done, p.total)
	}
	return len(b), nil
}

func (p *progressWriter) flush() {
	if p.report != nil {
		p.report(p.done, p.total)
	}
}
