package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanChunksSmallBufferSplitsAcrossWorkers(t *testing.T) {
	buf := make([]byte, 100)
	chunks := PlanChunks(buf, 4, 2, 0)
	require.Len(t, chunks, 4)
	// Every chunk but the last carries overlap bytes past its primary end.
	for i, c := range chunks {
		if i == len(chunks)-1 {
			require.Equal(t, c.PrimaryEnd, c.EndOffset)
		} else {
			require.Equal(t, c.PrimaryEnd+2, c.EndOffset)
		}
	}
	require.Equal(t, 100, chunks[len(chunks)-1].EndOffset)
}

func TestPlanChunksEmptyBuffer(t *testing.T) {
	require.Nil(t, PlanChunks(nil, 4, 0, 0))
}

func TestPlanChunksNoOverlap(t *testing.T) {
	buf := make([]byte, 40)
	chunks := PlanChunks(buf, 4, 0, 0)
	for _, c := range chunks {
		require.Equal(t, c.PrimaryEnd, c.EndOffset)
	}
}

func TestPlanChunksClampsWorkersWhenFewerNeeded(t *testing.T) {
	buf := make([]byte, 10)
	chunks := PlanChunks(buf, 100, 0, 0)
	require.Len(t, chunks, 10) // ceilDiv(10,100)=1 byte/chunk -> 10 chunks, not 100
}

func TestPlanChunksHonorsCustomMinChunkBytes(t *testing.T) {
	buf := make([]byte, 1000)
	// A 300-byte floor well above n/wantWorkers (1000/10=100) forces fewer,
	// larger chunks than wantWorkers=10 would otherwise produce.
	chunks := PlanChunks(buf, 10, 0, 300)
	require.Len(t, chunks, 4) // ceilDiv(1000,300)=4
	for _, c := range chunks {
		require.LessOrEqual(t, c.PrimaryEnd-c.StartOffset, 300)
	}
}

func TestPlanChunksCoversWholeBuffer(t *testing.T) {
	buf := make([]byte, 37)
	chunks := PlanChunks(buf, 5, 3, 0)
	require.Equal(t, 0, chunks[0].StartOffset)
	last := chunks[len(chunks)-1]
	require.Equal(t, 37, last.EndOffset)
	for i := 1; i < len(chunks); i++ {
		require.Equal(t, chunks[i-1].PrimaryEnd, chunks[i].StartOffset)
	}
}
