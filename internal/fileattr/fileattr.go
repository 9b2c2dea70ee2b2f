// Package fileattr reads the filesystem attributes recorded in a sidecar.
package fileattr

import (
	"os"
	"time"

	"github.com/djherbis/times"
)

// Attributes are the OS-level properties of a file. Times are nil when
// the platform or filesystem does not record them.
type Attributes struct {
	Size         int64      `json:"size"`
	CreatedTime  *time.Time `json:"created_time,omitempty"`
	ModifiedTime *time.Time `json:"modified_time,omitempty"`
}

// Read stats path. Failing to stat is an error; a missing timestamp is not.
func Read(path string) (Attributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attributes{}, err
	}

	attrs := Attributes{Size: info.Size()}

	if modified := info.ModTime(); !modified.IsZero() {
		attrs.ModifiedTime = utc(modified)
	}

	ts := times.Get(info)
	if !ts.HasBirthTime() {
		// Linux only exposes birth time through statx.
		if stat, err := times.Stat(path); err == nil {
			ts = stat
		}
	}
	if ts.HasBirthTime() {
		if born := ts.BirthTime(); !born.IsZero() {
			attrs.CreatedTime = utc(born)
		}
	}

	return attrs, nil
}

func utc(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
