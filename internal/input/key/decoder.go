package key

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultEscapeTimeout is how long the decoder waits after ESC before
// treating it as a lone Escape key.
const DefaultEscapeTimeout = 50 * time.Millisecond

const esc = 0x1b

var errTimeout = errors.New("key: escape timeout")

type readResult struct {
	b   byte
	err error
}

// Decoder turns a raw terminal byte stream into key events. It understands
// VT52 and ANSI cursor sequences, the ESC [ n ~ editing keys, cursor
// position reports, and the WordStar control keys.
//
// Bytes are read one at a time on demand so that nothing is consumed from
// the terminal while no caller is waiting for a key.
type Decoder struct {
	r          io.Reader
	want       chan struct{}
	got        chan readResult
	asked      bool
	pending    []byte
	seq        []byte
	prefix     bool
	err        error
	escTimeout time.Duration
	started    bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithEscapeTimeout sets the lone-Escape timeout.
func WithEscapeTimeout(d time.Duration) DecoderOption {
	return func(dec *Decoder) {
		if d > 0 {
			dec.escTimeout = d
		}
	}
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		r:          r,
		want:       make(chan struct{}, 1),
		got:        make(chan readResult, 1),
		escTimeout: DefaultEscapeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) reader() {
	var p [1]byte
	for range d.want {
		for {
			n, err := d.r.Read(p[:])
			if n == 1 {
				d.got <- readResult{b: p[0]}
				break
			}
			if err != nil {
				d.got <- readResult{err: err}
				return
			}
		}
	}
}

// readByte returns the next byte. A zero timeout waits indefinitely.
func (d *Decoder) readByte(ctx context.Context, timeout time.Duration) (byte, error) {
	if len(d.pending) > 0 {
		c := d.pending[0]
		d.pending = d.pending[1:]
		d.seq = append(d.seq, c)
		return c, nil
	}
	if d.err != nil {
		return 0, d.err
	}
	if !d.started {
		d.started = true
		go d.reader()
	}
	if !d.asked {
		d.want <- struct{}{}
		d.asked = true
	}

	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	select {
	case r := <-d.got:
		d.asked = false
		if r.err != nil {
			d.err = r.err
			return 0, r.err
		}
		d.seq = append(d.seq, r.b)
		return r.b, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-expired:
		return 0, errTimeout
	}
}

// NextEvent decodes the next key. A cancelled context leaves a partly
// read sequence or a pending Home prefix for the next call.
func (d *Decoder) NextEvent(ctx context.Context) (Event, error) {
	if !d.prefix {
		ev, err := d.decode(ctx)
		if err != nil {
			return Event{}, err
		}
		if ev.Special != Home {
			return ev, nil
		}
		d.prefix = true
	}
	next, err := d.decode(ctx)
	if err != nil {
		return Event{}, err
	}
	d.prefix = false
	return AfterPrefix(next), nil
}

// decode reads one key. When ctx ends mid-sequence the bytes read so far
// go back to pending.
func (d *Decoder) decode(ctx context.Context) (Event, error) {
	d.seq = d.seq[:0]
	ev, err := d.decodeKey(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) && len(d.seq) > 0 {
		d.pending = append(append([]byte(nil), d.seq...), d.pending...)
	}
	d.seq = d.seq[:0]
	return ev, err
}

func (d *Decoder) decodeKey(ctx context.Context) (Event, error) {
	c, err := d.readByte(ctx, 0)
	if err != nil {
		return Event{}, err
	}
	if c == esc {
		return d.escape(ctx)
	}
	return FromByte(c), nil
}

func (d *Decoder) escape(ctx context.Context) (Event, error) {
	c, err := d.readByte(ctx, d.escTimeout)
	if errors.Is(err, errTimeout) {
		return Key(Escape), nil
	}
	if err != nil {
		return Event{}, err
	}
	switch c {
	case 'A':
		return Key(Up), nil
	case 'B':
		return Key(Down), nil
	case 'C':
		return Key(Right), nil
	case 'D':
		return Key(Left), nil
	case 'P':
		return Key(Escape), nil
	case '/':
		// VT52 identify response: one more byte follows.
		if _, err := d.readByte(ctx, d.escTimeout); err != nil && !errors.Is(err, errTimeout) {
			return Event{}, err
		}
		return Key(Resize), nil
	case '[', 'O':
		return d.csi(ctx)
	}
	d.pending = append([]byte{c}, d.pending...)
	return Key(Escape), nil
}

func (d *Decoder) csi(ctx context.Context) (Event, error) {
	var args [2]int
	n := 0
	for {
		c, err := d.readByte(ctx, d.escTimeout)
		if errors.Is(err, errTimeout) {
			return Key(Escape), nil
		}
		if err != nil {
			return Event{}, err
		}
		switch {
		case c >= '0' && c <= '9':
			if args[n] < 10000 {
				args[n] = args[n]*10 + int(c-'0')
			}
			continue
		case c == ';':
			if n == 0 {
				n = 1
			}
			continue
		case c == '?':
			continue
		}
		switch c {
		case 'A':
			return Key(Up), nil
		case 'B':
			return Key(Down), nil
		case 'C':
			return Key(Right), nil
		case 'D':
			return Key(Left), nil
		case 'H':
			return Key(Start), nil
		case 'F':
			return Key(End), nil
		case 'R':
			return Event{Special: Resize, Rows: args[0], Cols: args[1]}, nil
		case 'c':
			return Key(Resize), nil
		case '~':
			return tilde(args[0]), nil
		}
		return Key(Escape), nil
	}
}

// tilde maps ESC [ n ~ to the VT220 editing keys.
func tilde(n int) Event {
	switch n {
	case 1:
		return Key(Find)
	case 2:
		return Key(Insert)
	case 3:
		return Key(Delete)
	case 4:
		return Key(Select)
	case 5:
		return Key(PageUp)
	case 6:
		return Key(PageDown)
	case 7:
		return Key(Start)
	case 8:
		return Key(End)
	}
	return Key(Escape)
}
