package capture

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// ErrNoData means a read timed out before a complete line arrived.
var ErrNoData = errors.New("capture: no data")

type ILineReader interface {
	ReadLine() (string, error)
}

const maxPendingLine = 4096

// StreamReader splits a byte stream into lines. The underlying reader may
// return (0, nil) when its read timeout expires; that surfaces as ErrNoData.
type StreamReader struct {
	r       io.Reader
	buf     []byte
	pending []byte
	err     error
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		r:   r,
		buf: make([]byte, 256),
	}
}

func (s *StreamReader) ReadLine() (string, error) {
	for {
		if i := bytes.IndexByte(s.pending, '\n'); i >= 0 {
			var line = s.pending[:i+1]
			s.pending = s.pending[i+1:]
			return decode(line), nil
		}
		if s.err != nil {
			if len(s.pending) != 0 {
				var line = s.pending
				s.pending = nil
				return decode(line), nil
			}
			return "", s.err
		}

		var n, err = s.r.Read(s.buf)
		if n > 0 {
			s.pending = append(s.pending, s.buf[:n]...)
			if len(s.pending) > maxPendingLine && bytes.IndexByte(s.pending, '\n') < 0 {
				// noise without line breaks
				s.pending = s.pending[:0]
			}
		}
		if err != nil {
			s.err = err
			continue
		}
		if n == 0 {
			return "", ErrNoData
		}
	}
}

// decode drops invalid UTF-8 the way a lenient terminal would.
func decode(line []byte) string {
	return strings.ToValidUTF8(string(line), "")
}
