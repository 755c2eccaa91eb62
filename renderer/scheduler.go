package renderer

import (
	"math"
	"time"
)

// The BlockScheduler interface is implemented by all row scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign them to the
	// pool of workers using feedback collected from previous frames.
	//
	// The stats slice contains one entry per worker with the block height
	// and render time for the previous frame. The function returns the
	// block height assignment for each worker.
	Schedule(stats []WorkerStat, frameH uint32) []uint32
}

// The naive scheduler splits the frame into equal blocks.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(stats []WorkerStat, frameH uint32) []uint32 {
	return evenSplit(len(stats), frameH)
}

// The perfect scheduler assumes that the volume of work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign them to the pool
// of workers using feedback collected from previous frames.
//
// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for worker w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(stats []WorkerStat, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of
	// workers or the frame height has changed we need to reset the block
	// assignments
	if len(sch.blockAssignment) != len(stats) || sum(sch.blockAssignment) != frameH {
		sch.blockAssignment = evenSplit(len(stats), frameH)
		return sch.blockAssignment
	}

	var total float64 = 0.0
	for _, stat := range stats {
		total += rowsPerNanosecond(stat)
	}

	scaler := float64(frameH) / total
	for idx, stat := range stats {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rowsPerNanosecond(stat)*scaler)))
	}

	balance(sch.blockAssignment, frameH)
	return sch.blockAssignment
}

func rowsPerNanosecond(stat WorkerStat) float64 {
	renderTime := stat.RenderTime
	if renderTime <= 0 {
		renderTime = time.Nanosecond
	}
	return float64(stat.BlockH) / float64(renderTime.Nanoseconds())
}

// Split frameH rows into numBlocks blocks. Rows that don't divide evenly are
// appended to the first block.
func evenSplit(numBlocks int, frameH uint32) []uint32 {
	if numBlocks == 0 {
		return nil
	}

	blocks := make([]uint32, numBlocks)
	rows := frameH / uint32(numBlocks)
	for idx := range blocks {
		blocks[idx] = rows
	}
	blocks[0] += frameH - rows*uint32(numBlocks)
	return blocks
}

// Adjust block assignments so that they add up to frameH. Missing rows are
// appended to the first block; extra rows are removed from the largest ones.
func balance(blocks []uint32, frameH uint32) {
	scheduled := sum(blocks)
	if scheduled <= frameH {
		blocks[0] += frameH - scheduled
		return
	}

	for extra := scheduled - frameH; extra > 0; extra-- {
		largest := 0
		for idx, rows := range blocks {
			if rows > blocks[largest] {
				largest = idx
			}
		}
		if blocks[largest] <= 1 {
			return
		}
		blocks[largest]--
	}
}

func sum(blocks []uint32) uint32 {
	var total uint32
	for _, rows := range blocks {
		total += rows
	}
	return total
}
