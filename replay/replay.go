// Package replay records pointer and key input per frame and plays it back
// Logs are JSON lines compressed with zstd
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Kind is the input gesture of a record
type Kind string

const (
	KindDown Kind = "down"
	KindMove Kind = "move"
	KindUp   Kind = "up"
	KindKey  Kind = "key"
)

// Record is one input applied before the frame's tick
type Record struct {
	Frame int64   `json:"f"`
	Kind  Kind    `json:"k"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Key   string  `json:"key,omitempty"`
}

// Recorder appends records to a compressed stream
type Recorder struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

// Create starts a recording file at path, truncating any previous one
func Create(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	r, err := NewRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewRecorder writes to w; Close flushes but does not close w
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 32*1024)}, nil
}

// Write appends one record
func (r *Recorder) Write(rec Record) error {
	if r.w == nil {
		return errors.New("recorder closed")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.n++
	return nil
}

// Count returns the number of records written
func (r *Recorder) Count() int {
	return r.n
}

// Close flushes the stream and closes the file when Create opened it
func (r *Recorder) Close() error {
	if r.w == nil {
		return nil
	}
	var errs []error
	errs = append(errs, r.w.Flush(), r.enc.Close())
	if r.f != nil {
		errs = append(errs, r.f.Close())
	}
	r.w, r.enc, r.f = nil, nil, nil
	return errors.Join(errs...)
}

// Player yields recorded input frame by frame
type Player struct {
	records []Record
	next    int
}

// Load reads a whole recording from path
func Load(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a recording; records must be in frame order
func Read(r io.Reader) (*Player, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	p := &Player{}
	sc := bufio.NewScanner(dec)
	line := 0
	var last int64
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("replay line %d: %w", line, err)
		}
		if rec.Frame < last {
			return nil, fmt.Errorf("replay line %d: frame %d before %d", line, rec.Frame, last)
		}
		last = rec.Frame
		p.records = append(p.records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	return p, nil
}

// Due returns the records scheduled at or before frame that were not yet returned
func (p *Player) Due(frame int64) []Record {
	start := p.next
	for p.next < len(p.records) && p.records[p.next].Frame <= frame {
		p.next++
	}
	return p.records[start:p.next]
}

// Done reports whether every record was returned
func (p *Player) Done() bool {
	return p.next >= len(p.records)
}

// Len returns the total record count
func (p *Player) Len() int {
	return len(p.records)
}
