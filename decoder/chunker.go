// SPDX-License-Identifier: EPL-2.0

package decoder

// MaxChunkSize is the largest piece of input fed to the state machine at
// once. A chunk of this size that holds no page marks the input as not Ogg.
const MaxChunkSize = 4096

// Chunker splits input into pieces of at most Size bytes. The zero value
// uses MaxChunkSize.
type Chunker struct {
	Size int
}

func (c Chunker) size() int {
	if c.Size <= 0 || c.Size > MaxChunkSize {
		return MaxChunkSize
	}
	return c.Size
}

// Each calls fn with consecutive pieces of p, in order, and stops at the
// first error.
func (c Chunker) Each(p []byte, fn func(chunk []byte) error) error {
	size := c.size()
	for len(p) > 0 {
		n := min(len(p), size)
		if err := fn(p[:n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
