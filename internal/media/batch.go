package media

import "github.com/google/uuid"

// BatchSize caps how many photos a single deletion round trip covers.
const BatchSize = 50

// DeletionBatch pairs local photo records with their remote asset ids for
// one round of bulk deletion.
type DeletionBatch struct {
	RecordIDs []uuid.UUID
	AssetIDs  []string
}

// MakeBatches chunks paired record/asset id lists into batches of size.
// The two lists are aligned by index; a length mismatch is tolerated by
// batching each list independently up to its own length.
func MakeBatches(recordIDs []uuid.UUID, assetIDs []string, size int) []DeletionBatch {
	if size <= 0 {
		size = BatchSize
	}

	n := len(recordIDs)
	if len(assetIDs) > n {
		n = len(assetIDs)
	}

	var batches []DeletionBatch
	for start := 0; start < n; start += size {
		var b DeletionBatch
		if start < len(recordIDs) {
			b.RecordIDs = recordIDs[start:min(start+size, len(recordIDs))]
		}
		if start < len(assetIDs) {
			b.AssetIDs = assetIDs[start:min(start+size, len(assetIDs))]
		}
		batches = append(batches, b)
	}
	return batches
}
