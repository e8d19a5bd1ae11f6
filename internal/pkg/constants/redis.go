package constants

// Redis key formats
const (
	KeySnapshot        = "pickups:snapshot:%s:%d" // Format: pickups:snapshot:{version}:{hour}
	KeySnapshotPattern = "pickups:snapshot:%s:*"  // Every hour of one version
)
