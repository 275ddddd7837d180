package audio

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// cacheMagic identifies waveform cache entries on disk.
var cacheMagic = [4]byte{'S', 'K', 'C', '1'}

// Cache is an optional on-disk store of decoded waveforms, keyed by the
// source path, its modification time and the duration cap. It is purely
// advisory: any read or write problem degrades to a cache miss and the
// caller decodes for real. Correctness never depends on its contents.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir, creating it if needed.
// An empty dir disables caching (all lookups miss, stores are no-ops).
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return &Cache{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Enabled reports whether the cache is backed by a directory.
func (c *Cache) Enabled() bool {
	return c != nil && c.dir != ""
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".wf")
}

// Key derives the cache key for a source file. The modification time is
// folded in so a rewritten file never serves a stale waveform.
func (c *Cache) Key(path string, maxSeconds float64) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	var mtime int64
	if fi, err := os.Stat(path); err == nil {
		mtime = fi.ModTime().UnixNano()
	}
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%g", abs, mtime, maxSeconds))
	return hex.EncodeToString(h[:16])
}

// Get loads a cached waveform. The second return value is false on any
// miss, malformed entry or read error.
func (c *Cache) Get(key string) (*Waveform, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil || len(data) < 16 {
		return nil, false
	}
	if [4]byte(data[:4]) != cacheMagic {
		return nil, false
	}
	sampleRate := int(binary.LittleEndian.Uint32(data[4:8]))
	count := int(binary.LittleEndian.Uint64(data[8:16]))
	if sampleRate <= 0 || count < 0 || len(data) != 16+count*8 {
		return nil, false
	}
	samples := make([]float64, count)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[16+i*8:])
		samples[i] = math.Float64frombits(bits)
	}
	return &Waveform{Samples: samples, SampleRate: sampleRate}, true
}

// Put stores a waveform under key. Failures are swallowed; the cache is
// advisory and the run must not care.
func (c *Cache) Put(key string, w *Waveform) {
	if !c.Enabled() || w == nil {
		return
	}
	buf := make([]byte, 16+len(w.Samples)*8)
	copy(buf[:4], cacheMagic[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(w.SampleRate))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(w.Samples)))
	for i, s := range w.Samples {
		binary.LittleEndian.PutUint64(buf[16+i*8:], math.Float64bits(s))
	}
	tmp := c.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, c.entryPath(key))
}

// Clear removes the cache directory and everything in it.
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}
	return os.RemoveAll(c.dir)
}
