// Package input turns a raw terminal byte stream into per-frame game input.
package input

import (
	"bytes"
	"context"
	"io"
	"strconv"
)

// Input represents the input gathered since the previous frame.
type Input struct {
	Quit    bool
	Fire    int // Fire events (clicks or SPACE presses) in arrival order
	Restart bool
}

// Stream delivers input bytes via a channel. Bytes belonging to an escape
// sequence that has not fully arrived yet are kept for the next read.
type Stream struct {
	ch      chan byte
	pending []byte
	fresh   bool // pending holds a byte ReadInput has not parsed yet
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (e.g. the session ended).
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Wait blocks until a byte not yet seen by ReadInput is available, the stream
// ends (io.EOF) or ctx is done. Leftovers of an incomplete escape sequence do
// not count; they only complete once more bytes arrive.
func (s *Stream) Wait(ctx context.Context) error {
	if s.fresh {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case b, ok := <-s.ch:
		if !ok {
			return io.EOF
		}
		s.pending = append(s.pending, b)
		s.fresh = true
		return nil
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	s.fresh = false
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 {
		s.pending = append(s.pending[:0], rest...)
	}
	if closed {
		in.Quit = true
	}
	return in
}

// Parse decodes key presses and SGR mouse reports. It returns the parsed input
// and any trailing bytes of an incomplete escape sequence.
func Parse(buf []byte) (Input, []byte) {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, complete := parseEscape(buf[i:], &in)
			if !complete {
				return in, buf[i:]
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q', '\x03': // Ctrl-C arrives as a byte in raw mode
			in.Quit = true
		case ' ':
			in.Fire++
		case '\n', '\r', 'r', 'R':
			in.Restart = true
		}
	}

	return in, nil
}

// parseEscape consumes one escape sequence starting at seq[0] == ESC.
// Returns the number of bytes consumed and whether the sequence was complete.
func parseEscape(seq []byte, in *Input) (int, bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		return 1, true // Lone ESC, ignored
	}
	if len(seq) < 3 {
		return 0, false
	}
	if seq[2] != '<' {
		// CSI key sequence (arrows etc.): ESC [ <params> <final byte>
		for j := 2; j < len(seq); j++ {
			if seq[j] >= 0x40 && seq[j] <= 0x7e {
				return j + 1, true
			}
		}
		return 0, false
	}

	// SGR mouse report: ESC [ < button ; col ; row (M|m)
	end := bytes.IndexAny(seq[3:], "Mm")
	if end < 0 {
		return 0, false
	}
	end += 3
	fields := bytes.Split(seq[3:end], []byte{';'})
	if len(fields) == 3 && seq[end] == 'M' {
		button, err := strconv.Atoi(string(fields[0]))
		// Left button press without motion; modifiers set bits 2-4.
		if err == nil && button&^0x1c == 0 {
			in.Fire++
		}
	}
	return end + 1, true
}
