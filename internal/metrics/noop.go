package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered(role string)    {}
func (n *NoopRecorder) IncLogin(status string)           {}
func (n *NoopRecorder) IncAuthRejected(reason string)    {}
func (n *NoopRecorder) IncRestaurantCreated()            {}
func (n *NoopRecorder) IncBoxCreated()                   {}
func (n *NoopRecorder) IncBoxAvailabilityChanged()       {}
func (n *NoopRecorder) IncFavoriteAdded()                {}
func (n *NoopRecorder) IncFavoriteRemoved()              {}
func (n *NoopRecorder) ObserveCatalogSize(size int)      {}
func (n *NoopRecorder) IncOrphanedReference(kind string) {}
