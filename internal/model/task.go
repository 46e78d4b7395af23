package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// FetchTask represents a single fetch of a URL into a local directory
type FetchTask struct {
	ID         string
	URL        string
	Dir        string     // destination directory
	FileName   string     // last path segment of URL
	OutputPath string     // Dir joined with FileName
	Status     TaskStatus
	Progress   float64    // 0.0 to 1.0, stays 0 when size is unknown
	Percent    int        // 0 to 100
	BytesDone  int64      // bytes written so far
	TotalBytes int64      // -1 if unknown
	LastError  string     // last error message if any
	StartedAt  time.Time  // when task was queued
	FinishedAt time.Time  // when task finished
}

// GetDisplayTitle returns file name or URL in order of preference
func (ft *FetchTask) GetDisplayTitle() string {
	if ft.FileName != "" {
		return ft.FileName
	}
	if ft.OutputPath != "" {
		return filepath.Base(ft.OutputPath)
	}
	return ft.URL
}

// GetSizeString returns transferred/total size, or "—" before any bytes arrive
func (ft *FetchTask) GetSizeString() string {
	if ft.BytesDone <= 0 && ft.TotalBytes <= 0 {
		return "—"
	}
	if ft.TotalBytes > 0 {
		return FormatFileSize(ft.BytesDone) + " / " + FormatFileSize(ft.TotalBytes)
	}
	return FormatFileSize(ft.BytesDone)
}

// SetProgress records bytes written and derives Progress/Percent when total is known
func (ft *FetchTask) SetProgress(done, total int64) {
	ft.BytesDone = done
	ft.TotalBytes = total
	if total > 0 {
		ft.Progress = float64(done) / float64(total)
		if ft.Progress > 1 {
			ft.Progress = 1
		}
		ft.Percent = int(ft.Progress * 100)
	}
}

// FormatFileSize formats file size in bytes to human readable format
func FormatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}
