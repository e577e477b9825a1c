package renderer

// DefaultBlockSize is the number of contiguous scanlines in a block
const DefaultBlockSize = 32

// RowRange is a half-open range of scanlines [Start, End), counted from the top
type RowRange struct {
	Start int
	End   int
}

// NumBlocks returns ceil(height / blockSize)
func NumBlocks(height, blockSize int) int {
	if height <= 0 || blockSize <= 0 {
		return 0
	}
	return (height + blockSize - 1) / blockSize
}

// BlockRows returns the blocks owned by workerID when numWorkers share an
// image of the given height: blocks workerID, workerID+numWorkers, ...
// Ranges for different workers never overlap and together cover [0, height).
func BlockRows(workerID, numWorkers, blockSize, height int) []RowRange {
	if numWorkers <= 0 || workerID < 0 || workerID >= numWorkers {
		return nil
	}

	var ranges []RowRange
	blocks := NumBlocks(height, blockSize)
	for block := workerID; block < blocks; block += numWorkers {
		start := block * blockSize
		ranges = append(ranges, RowRange{
			Start: start,
			End:   min(start+blockSize, height),
		})
	}
	return ranges
}
