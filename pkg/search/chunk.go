// Package search implements spec.md C8: the chunked parallel driver that
// splits a buffer into byte-offset ranges, scans each on the thread pool
// (C9), and merges per-chunk results into one globally ordered
// MatchResult. Chunk's shape (Content/StartOffset/EndOffset/Index) is
// adapted from praetorian-inc-titus/pkg/matcher/chunker.go's Chunk, moved
// from line-overlap windows over an in-memory file to spec.md §4.8's
// byte-offset, max_plen-1-overlap discipline over an mmap'd buffer.
package search

// Chunk is one worker's byte range of the shared input buffer.
type Chunk struct {
	Content         []byte // buf[StartOffset:EndOffset], including any overlap tail
	StartOffset     int    // absolute offset of Content[0] in the original buffer
	EndOffset       int    // absolute offset one past Content's last byte
	PrimaryEnd      int    // absolute offset one past this chunk's owned (non-overlap) range
	Index           int
}

// defaultMinChunkSize is the floor spec.md §4.8 step 2 applies once the
// buffer is large enough to need it (4 MiB), used whenever a caller
// passes minChunkBytes <= 0. pkg/config.Defaults.MinChunkBytes lets a
// deployment override this floor.
const defaultMinChunkSize = 4 * 1024 * 1024

// PlanChunks implements spec.md §4.8 steps 2-3: compute chunk size C,
// clamp T down if len/C needs fewer workers than requested, and build each
// worker's [chunk_start, chunk_start+chunk_len) range with trailing
// overlap bytes (max_plen-1) for all but the last chunk, when overlap > 0
// (literal engines; regex callers pass overlap 0 per spec.md §4.8 step 3).
// minChunkBytes <= 0 uses defaultMinChunkSize.
func PlanChunks(buf []byte, wantWorkers, overlap int, minChunkBytes int64) []Chunk {
	n := len(buf)
	if n == 0 {
		return nil
	}
	if wantWorkers <= 0 {
		wantWorkers = 1
	}
	minChunkSize := int(minChunkBytes)
	if minChunkBytes <= 0 {
		minChunkSize = defaultMinChunkSize
	}

	chunkSize := ceilDiv(n, wantWorkers)
	if n > minChunkSize && chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	workers := ceilDiv(n, chunkSize)
	if workers < 1 {
		workers = 1
	}

	chunks := make([]Chunk, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		if start >= n {
			break
		}
		primaryLen := chunkSize
		if start+primaryLen > n {
			primaryLen = n - start
		}
		primaryEnd := start + primaryLen

		end := primaryEnd
		isLast := i == workers-1
		if !isLast && overlap > 0 {
			end += overlap
			if end > n {
				end = n
			}
		}

		chunks = append(chunks, Chunk{
			Content:     buf[start:end],
			StartOffset: start,
			EndOffset:   end,
			PrimaryEnd:  primaryEnd,
			Index:       i,
		})
	}
	return chunks
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
