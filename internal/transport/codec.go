package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"sync"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// MaxRecordSize bounds a single encoded record.
const MaxRecordSize = 64 * 1024

// Encoder writes records as one JSON object per line. It is safe for
// concurrent use.
type Encoder struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes one record.
func (e *Encoder) Encode(r Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(r)
}

// Decoder reads records written by an Encoder.
type Decoder struct {
	scanner *bufio.Scanner
	source  string
	line    int
}

// NewDecoder creates a decoder reading from r. source names the peer in
// error positions.
func NewDecoder(r io.Reader, source string) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), MaxRecordSize)
	return &Decoder{scanner: s, source: source}
}

// Decode reads the next record. It returns io.EOF at the end of the stream
// and a *errors.ParseError wrapping ErrTransportParse for anything that is
// not a valid record.
func (d *Decoder) Decode() (Record, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var r Record
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&r); err != nil {
			return Record{}, d.parseError(err, line)
		}
		if dec.More() {
			return Record{}, d.parseError(errors.ErrTransportParse, line)
		}
		if err := r.Validate(); err != nil {
			return Record{}, d.parseError(err, line)
		}
		return r, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Record{}, d.parseError(err, nil)
	}
	return Record{}, io.EOF
}

func (d *Decoder) parseError(err error, got []byte) error {
	if !stderrors.Is(err, errors.ErrTransportParse) {
		err = errors.Wrap(errors.ErrTransportParse, err.Error())
	}
	pe := &errors.ParseError{Err: err, File: d.source, Line: d.line, Got: string(got)}
	if len(got) > 80 {
		pe.Got = string(got[:80]) + "..."
	}
	return pe
}
