package analyze

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spectrokit/spectrokit/internal/audio"
	"github.com/spectrokit/spectrokit/internal/feature"
	"github.com/spectrokit/spectrokit/internal/logging"
	"github.com/spectrokit/spectrokit/internal/render"
)

// Options configures a run. Features must already be validated against
// the registry; the analyzer assumes every name resolves.
type Options struct {
	Features    []string
	Labels      []string
	MaxDuration float64 // seconds; 0 means analyze the whole file
	ImageDir    string  // empty disables spectrogram rendering
	Cache       *audio.Cache
}

// AnalyzeFile decodes one file and runs every requested feature over it.
//
// Feature failures follow the lenient policy: a failing feature records
// a failure marker and the remaining features still run, so one bad
// feature never invalidates the file. Only decode errors fail the whole
// file. Rendering errors are logged and do not touch the numeric result.
func AnalyzeFile(path string, opts Options) (*Result, error) {
	waveform, err := decode(path, opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	analysis := make(map[string]FeatureValue, len(opts.Features))
	for _, name := range opts.Features {
		fn, ok := feature.Lookup(name)
		if !ok {
			// Validation runs before dispatch, so this is a programming
			// error rather than user input; record it like any failure.
			analysis[name] = failedValue("feature not registered")
			continue
		}
		value, err := fn(waveform.Samples, waveform.SampleRate)
		if err != nil {
			logging.Logger.Warn("feature failed",
				zap.String("file", path),
				zap.String("feature", name),
				zap.Error(err))
			analysis[name] = failedValue(err.Error())
			continue
		}
		analysis[name] = finiteValue(value)
	}

	if opts.ImageDir != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := render.Spectrogram(waveform.Samples, waveform.SampleRate, opts.Labels, name, opts.ImageDir); err != nil {
			logging.Logger.Warn("spectrogram rendering failed",
				zap.String("file", path),
				zap.Error(err))
		}
	}

	return &Result{
		File:     path,
		Labels:   opts.Labels,
		Analysis: analysis,
	}, nil
}

// decode loads the waveform, consulting the advisory cache first. Cache
// problems silently fall through to a real decode.
func decode(path string, opts Options) (*audio.Waveform, error) {
	if opts.Cache.Enabled() {
		key := opts.Cache.Key(path, opts.MaxDuration)
		if w, ok := opts.Cache.Get(key); ok {
			return w, nil
		}
		w, err := audio.Decode(path, opts.MaxDuration)
		if err != nil {
			return nil, err
		}
		opts.Cache.Put(key, w)
		return w, nil
	}
	return audio.Decode(path, opts.MaxDuration)
}
