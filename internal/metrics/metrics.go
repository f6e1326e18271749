// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
type Recorder interface {
	// Identity metrics
	IncUserRegistered(role string)
	IncLogin(status string)        // status: "success" or "failure"
	IncAuthRejected(reason string) // reason: "missing_token", "malformed_header", "invalid_token"

	// Marketplace metrics
	IncRestaurantCreated()
	IncBoxCreated()
	IncBoxAvailabilityChanged()
	IncFavoriteAdded()
	IncFavoriteRemoved()
	ObserveCatalogSize(size int)
	IncOrphanedReference(kind string) // kind: "restaurant" or "box"
}
