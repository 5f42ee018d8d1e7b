package telemetry

import (
	"errors"
	"io"

	"github.com/calebcase/oops"
)

// Reader iterates the frames of an io.Reader.
//
//	r := telemetry.NewReader(port, telemetry.DefaultOptions)
//	for r.Next() {
//		f := r.Frame()
//		...
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
type Reader struct {
	r   io.Reader
	dec *Decoder
	buf []byte

	queue []Frame
	frame Frame

	done bool
	err  error
}

func NewReader(r io.Reader, opts Options) *Reader {
	return &Reader{
		r:   r,
		dec: NewDecoder(opts),
		buf: make([]byte, 512),
	}
}

// Next advances to the next frame. It returns false at the end of the stream
// or on a read error.
func (r *Reader) Next() (ok bool) {
	for len(r.queue) == 0 {
		if r.done {
			return false
		}

		n, err := r.r.Read(r.buf)
		r.queue = append(r.queue, r.dec.Feed(r.buf[:n])...)

		if err == nil {
			continue
		}

		r.done = true

		if !errors.Is(err, io.EOF) {
			r.err = oops.Trace(err)

			continue
		}

		f, flushed := r.dec.Flush()
		if flushed {
			r.queue = append(r.queue, f)
		}
	}

	r.frame = r.queue[0]
	r.queue = r.queue[1:]

	return true
}

// Frame returns the frame found by the last call to Next.
func (r *Reader) Frame() Frame {
	return r.frame
}

// Err returns the first non-EOF read error.
func (r *Reader) Err() error {
	return r.err
}
