package executor

import (
	"io"
	"strings"
	"sync"
)

// drainStream copies a process stream into the capture buffer, mirroring each
// chunk to the live writer. The stream is always read to EOF so the child
// process can never block on a full pipe, and the capture preserves the
// output byte for byte, trailing newline or not.
func drainStream(wg *sync.WaitGroup, r io.Reader, live io.Writer, capture *strings.Builder) {
	defer wg.Done()

	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			capture.Write(buf[:n])
			if live != nil {
				live.Write(buf[:n])
			}
		}
		if err != nil {
			return
		}
	}
}
