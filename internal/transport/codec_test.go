package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/draughts-go/internal/draughts"
	derrors "github.com/lgbarn/draughts-go/internal/errors"
)

func TestCodecRoundTrip(t *testing.T) {
	records := []Record{
		Move(9, 13),
		Capture(14, 11),
		Welcome(draughts.Black, draughts.NewStandardSetup()),
		Exit("resigned"),
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, r := range records {
		require.NoError(t, enc.Encode(r))
	}
	assert.Equal(t, len(records), strings.Count(buf.String(), "\n"), "one record per line")

	dec := NewDecoder(&buf, "pipe")
	for _, want := range records {
		got, err := dec.Decode()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := dec.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	dec := NewDecoder(strings.NewReader("\n  \n{\"kind\":\"EXIT\",\"reason\":\"bye\"}\n"), "pipe")
	r, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, Exit("bye"), r)
}

func TestDecodeRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", "hello"},
		{"truncated", `{"kind":"MOVE","pieceId":9`},
		{"unknown kind", `{"kind":"JUMP","pieceId":9,"destCell":13}`},
		{"unknown field", `{"kind":"MOVE","pieceId":9,"destCell":13,"extra":1}`},
		{"missing piece", `{"kind":"MOVE","destCell":13}`},
		{"cell off the board", `{"kind":"CAPTURE","pieceId":9,"destCell":33}`},
		{"wrong field type", `{"kind":"MOVE","pieceId":"nine","destCell":13}`},
		{"two objects", `{"kind":"EXIT"} {"kind":"EXIT"}`},
		{"welcome without team", `{"kind":"WELCOME","session":"2b0c7f4e-8f4e-4b8e-9d1a-0f1f4c3b2a10","redPieceIds":[1,2,3,4,5,6,7,8,9,10,11,12],"blackPieceIds":[13,14,15,16,17,18,19,20,21,22,23,24]}`},
		{"welcome with short ids", `{"kind":"WELCOME","session":"2b0c7f4e-8f4e-4b8e-9d1a-0f1f4c3b2a10","team":"Red","redPieceIds":[1],"blackPieceIds":[2]}`},
		{"welcome with bad session", `{"kind":"WELCOME","session":"x","team":"Red","redPieceIds":[1,2,3,4,5,6,7,8,9,10,11,12],"blackPieceIds":[13,14,15,16,17,18,19,20,21,22,23,24]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(strings.NewReader("\n"+tt.line+"\n"), "peer")
			_, err := dec.Decode()
			require.Error(t, err)
			assert.True(t, errors.Is(err, derrors.ErrTransportParse), "error %v should wrap ErrTransportParse", err)

			var pe *derrors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "peer", pe.File)
			assert.Equal(t, 2, pe.Line)
		})
	}
}

func TestWelcomeSetup(t *testing.T) {
	setup := draughts.NewStandardSetup()
	r := Welcome(draughts.Black, setup)
	require.NoError(t, r.Validate())

	got, err := r.Setup()
	require.NoError(t, err)
	assert.Equal(t, setup, got)

	other := Welcome(draughts.Black, setup)
	assert.NotEqual(t, r.Session, other.Session, "each welcome opens a new session")
}

func TestRecordString(t *testing.T) {
	assert.Equal(t, "MOVE piece 9 to 13", Move(9, 13).String())
	assert.Equal(t, `EXIT "bye"`, Exit("bye").String())
}
