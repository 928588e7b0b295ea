package cache

import "strconv"

// FrameKeyOpts identifies one rendered frame of a configuration.
type FrameKeyOpts struct {
	Offset float64 `json:"offset"`
	Format string  `json:"format"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FrameKey returns the key of one rendered frame of the configuration
	// whose content hash is configHash.
	FrameKey(configHash string, opts FrameKeyOpts) string
}

// DefaultKeyer hashes frame options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FrameKey implements Keyer.
func (DefaultKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return hashKey("frame", configHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// build version so that frames rendered by an older binary are not reused.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey implements Keyer.
func (k *ScopedKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(configHash, opts)
}

// OffsetLabel formats an offset for use in file names and log fields.
func OffsetLabel(offset float64) string {
	return strconv.FormatFloat(offset, 'f', -1, 64)
}
