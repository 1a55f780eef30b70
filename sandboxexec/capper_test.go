package sandboxexec

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func Test_CapOutput_Passes_Through_Short_Input(t *testing.T) {
	t.Parallel()

	got, err := capOutput(strings.NewReader("hello\nworld\n"), 1024, 256)
	if err != nil {
		t.Fatalf("capOutput: %v", err)
	}

	if string(got) != "hello\nworld\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_CapOutput_Enforces_Byte_Budget(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("x", 100)

	got, err := capOutput(strings.NewReader(input), 10, 256)
	if err != nil {
		t.Fatalf("capOutput: %v", err)
	}

	if len(got) != 10 {
		t.Fatalf("expected 10 bytes, got %d", len(got))
	}
}

func Test_CapOutput_Enforces_Line_Budget(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a\n", 300)

	got, err := capOutput(strings.NewReader(input), 10*1024, 5)
	if err != nil {
		t.Fatalf("capOutput: %v", err)
	}

	if got := strings.Count(string(got), "\n"); got != 5 {
		t.Fatalf("expected 5 newlines, got %d", got)
	}

	if string(got) != strings.Repeat("a\n", 5) {
		t.Fatalf("got %q", got)
	}
}

func Test_CapOutput_Includes_Trailing_Newline_That_Exhausts_Line_Budget(t *testing.T) {
	t.Parallel()

	// Exactly one line, ending with the newline that brings remainingLines
	// to 0. The newline itself must be included, but nothing after it.
	got, err := capOutput(strings.NewReader("one\nsecond-line-cut"), 10*1024, 1)
	if err != nil {
		t.Fatalf("capOutput: %v", err)
	}

	if string(got) != "one\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_CapOutput_Drains_To_EOF_Past_Either_Cap(t *testing.T) {
	t.Parallel()

	// A reader that reports how many bytes it was asked to serve in total,
	// so we can assert the drain actually reached EOF instead of stopping
	// early once a cap is hit.
	r := &countingReader{data: []byte(strings.Repeat("z", 50_000))}

	got, err := capOutput(r, 16, 2)
	if err != nil {
		t.Fatalf("capOutput: %v", err)
	}

	if len(got) != 16 {
		t.Fatalf("expected 16 bytes kept, got %d", len(got))
	}

	if r.offset != len(r.data) {
		t.Fatalf("expected reader fully drained, consumed %d of %d bytes", r.offset, len(r.data))
	}
}

func Test_CapOutput_Propagates_Read_Errors(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")

	_, err := capOutput(&erroringReader{err: wantErr}, 1024, 256)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

type countingReader struct {
	data   []byte
	offset int
}

func (r *countingReader) Read(p []byte) (int, error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}

	n := copy(p, r.data[r.offset:])
	r.offset += n

	return n, nil
}

type erroringReader struct {
	err error
}

func (r *erroringReader) Read(_ []byte) (int, error) {
	return 0, r.err
}
