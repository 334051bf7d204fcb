package archive

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

const readBufferSize = 64 << 10

// Scan hands every non-blank line of r to fn, numbered from 1 by physical line.
// A line that does not decode reaches fn with Err set; only errors from r, fn or ctx stop the scan.
func Scan(ctx context.Context, r io.Reader, fn func(usecase.RestoreLine) error) error {
	br := bufio.NewReaderSize(r, readBufferSize)
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	number := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf.Reset()
		eof, err := readLine(br, buf)
		if err != nil {
			return fmt.Errorf("read line %d: %w", number+1, err)
		}
		if eof && buf.Len() == 0 {
			return nil
		}
		number++

		raw := bytes.TrimSpace(buf.B)
		if len(raw) > 0 {
			if err := fn(decodeLine(number, raw)); err != nil {
				return err
			}
		}
		if eof {
			return nil
		}
	}
}

// readLine appends one line, without its terminator, to buf. Lines longer than the reader's buffer are joined.
func readLine(br *bufio.Reader, buf *bytebufferpool.ByteBuffer) (bool, error) {
	for {
		chunk, err := br.ReadSlice('\n')
		_, _ = buf.Write(chunk)
		switch {
		case err == nil:
			buf.B = bytes.TrimRight(buf.B, "\r\n")
			return false, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return true, nil
		default:
			return false, err
		}
	}
}

func decodeLine(number int, raw []byte) usecase.RestoreLine {
	var entry usecase.RestoreEntry
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return usecase.RestoreLine{Number: number, Err: fmt.Errorf("%w: line %d: %v", usecase.ErrInvalidInput, number, err)}
	}
	if entry.Kind == "" {
		return usecase.RestoreLine{Number: number, Err: fmt.Errorf("%w: line %d: kind is required", usecase.ErrInvalidInput, number)}
	}
	return usecase.RestoreLine{Number: number, Entry: entry}
}
