package snapshot

// FirstEligibleHeight is the lowest snapshot height for a chain starting at
// genesisHeight. Heights within three grid intervals of genesis are never
// snapshotted.
func FirstEligibleHeight(genesisHeight, grid uint64) uint64 {
	return (genesisHeight+3*grid)/grid*grid - grid
}

// IsSnapshotHeight reports whether a block at height triggers a snapshot.
func IsSnapshotHeight(genesisHeight, height, grid uint64) bool {
	if grid == 0 {
		return false
	}
	return height%grid == 0 && height >= FirstEligibleHeight(genesisHeight, grid)
}
