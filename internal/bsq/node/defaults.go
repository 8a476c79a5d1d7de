package node

import "time"

const (
	defaultWorkerCount = 8

	fetchChunkSize uint64 = 100

	sleepDuration = 5 * time.Second

	hubSubscriberBuffer = 64
)
