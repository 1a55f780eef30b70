package sandboxexec

import "io"

// capOutput drains r to EOF, returning at most maxBytes bytes containing at
// most maxLines newline characters.
//
// A byte is copied into the result iff, at the moment it is inspected, both
// budgets are still strictly positive. This means the result may end with a
// trailing '\n' that exhausts the line budget, but never includes any byte
// that follows it. Once either budget reaches zero, reading continues (and
// is discarded) until EOF so the writer on the other end of r never blocks
// on a full pipe.
//
// Any read error aborts the drain and is returned; partial output collected
// so far is discarded.
func capOutput(r io.Reader, maxBytes, maxLines int) ([]byte, error) {
	buf := make([]byte, 0, min(maxBytes, 8*1024))
	scratch := make([]byte, 8*1024)

	remainingBytes := maxBytes
	remainingLines := maxLines

	for {
		n, err := r.Read(scratch)
		if n > 0 {
			if remainingBytes > 0 && remainingLines > 0 {
				copyLen := 0

				for _, b := range scratch[:n] {
					if remainingBytes == 0 || remainingLines == 0 {
						break
					}

					copyLen++
					remainingBytes--

					if b == '\n' {
						remainingLines--
					}
				}

				buf = append(buf, scratch[:copyLen]...)
			}
			// Keep consuming (and discarding) past either cap so the writer
			// never blocks on a full pipe.
		}

		if err != nil {
			if err == io.EOF {
				return buf, nil
			}

			return nil, err
		}
	}
}
