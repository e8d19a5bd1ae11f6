package constants

// NATS Subjects
const (
	// Every replica holds its own dataset, so reloads are broadcast
	SubjectDatasetReload = "pickups.dataset.reload"
	SubjectDatasetLoaded = "pickups.dataset.loaded"
)
