// Package pipeline turns image files into JSON sidecars, one file at a time.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ryoh827/photometa/internal/exif"
	"github.com/ryoh827/photometa/internal/fileattr"
	"github.com/ryoh827/photometa/internal/sidecar"
)

// FailurePolicy decides what ProcessAll does after a file fails.
type FailurePolicy int

const (
	// StopOnFailure abandons the remaining paths.
	StopOnFailure FailurePolicy = iota
	// ContinueOnFailure attempts every path and reports all failures.
	ContinueOnFailure
)

func (p FailurePolicy) String() string {
	switch p {
	case StopOnFailure:
		return "stop"
	case ContinueOnFailure:
		return "continue"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "stop" or "continue".
func ParsePolicy(raw string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "stop":
		return StopOnFailure, nil
	case "continue":
		return ContinueOnFailure, nil
	default:
		return 0, fmt.Errorf("unknown failure policy %q", raw)
	}
}

type Options struct {
	// Source opens images for tag decoding. Defaults to the local filesystem.
	Source exif.ImageSource
	// IncludeFilename selects the sidecar schema that starts with "filename".
	IncludeFilename bool
	Policy          FailurePolicy
}

// Processor runs the sidecar pipeline. It keeps no state between files.
type Processor struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Processor {
	if opts.Source == nil {
		opts.Source = exif.OSImageSource{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{opts: opts, logger: logger}
}

// ProcessFile reads the attributes and camera metadata of path and writes
// them to its sidecar. Nothing is written unless both reads succeed.
func (p *Processor) ProcessFile(path string) error {
	log := p.logger.With("path", path)

	attrs, err := fileattr.Read(path)
	if err != nil {
		return &Error{Path: path, Kind: KindIO, Err: err}
	}
	log.Debug("file attributes read", "size", attrs.Size)

	camera, err := exif.Extract(path, p.opts.Source)
	if err != nil {
		kind := KindIO
		if exif.IsFormatError(err) {
			kind = KindFormat
		}
		return &Error{Path: path, Kind: kind, Err: err}
	}
	log.Debug("camera metadata normalized",
		"orientation", camera.Orientation != nil,
		"capture_time", camera.CaptureTime != nil,
		"camera_model", camera.CameraModel != nil,
		"camera_serial", camera.CameraSerial != nil,
	)

	record := sidecar.Merge(attrs, camera)
	if p.opts.IncludeFilename {
		record = record.Named(filepath.Base(path))
	}

	output := sidecar.Path(path)
	if err := sidecar.Write(output, record); err != nil {
		return &Error{Path: path, Kind: KindIO, Err: err}
	}
	log.Info("sidecar written", "output", output, "size", attrs.Size)

	return nil
}

// ProcessAll handles paths in order and returns the failures, honoring
// the configured FailurePolicy.
func (p *Processor) ProcessAll(paths []string) []error {
	var failures []error
	for _, path := range paths {
		err := p.ProcessFile(path)
		if err == nil {
			continue
		}

		attrs := []any{"path", path, "error", err}
		var perr *Error
		if errors.As(err, &perr) {
			attrs = append(attrs, "kind", perr.Kind.String())
		}
		p.logger.Info("processing failed", attrs...)

		failures = append(failures, err)
		if p.opts.Policy == StopOnFailure {
			break
		}
	}
	return failures
}
