package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports Recorder events as Prometheus collectors.
type PrometheusRecorder struct {
	usersRegistered        *prometheus.CounterVec
	logins                 *prometheus.CounterVec
	authRejections         *prometheus.CounterVec
	restaurantsCreated     prometheus.Counter
	boxesCreated           prometheus.Counter
	boxAvailabilityChanges prometheus.Counter
	favoritesAdded         prometheus.Counter
	favoritesRemoved       prometheus.Counter
	catalogSize            prometheus.Histogram
	orphanedReferences     *prometheus.CounterVec
}

// NewPrometheus creates a PrometheusRecorder and registers its collectors.
func NewPrometheus(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	p := &PrometheusRecorder{
		usersRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "users_registered_total",
			Help:      "Registered identities by role.",
		}, []string{"role"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"status"}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "auth_rejections_total",
			Help:      "Protected requests rejected before reaching a handler.",
		}, []string{"reason"}),
		restaurantsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "restaurants_created_total",
			Help:      "Restaurant profiles created.",
		}),
		boxesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "boxes_created_total",
			Help:      "Boxes created.",
		}),
		boxAvailabilityChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "box_availability_changes_total",
			Help:      "Box availability updates.",
		}),
		favoritesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "favorites_added_total",
			Help:      "Favorites added.",
		}),
		favoritesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "favorites_removed_total",
			Help:      "Favorites removed.",
		}),
		catalogSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sat",
			Name:      "catalog_items",
			Help:      "Number of boxes returned per catalog read.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		orphanedReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Name:      "orphaned_references_total",
			Help:      "Dangling cross-references substituted or skipped on read.",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{
		p.usersRegistered,
		p.logins,
		p.authRejections,
		p.restaurantsCreated,
		p.boxesCreated,
		p.boxAvailabilityChanges,
		p.favoritesAdded,
		p.favoritesRemoved,
		p.catalogSize,
		p.orphanedReferences,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *PrometheusRecorder) IncUserRegistered(role string) {
	p.usersRegistered.WithLabelValues(role).Inc()
}

func (p *PrometheusRecorder) IncLogin(status string) {
	p.logins.WithLabelValues(status).Inc()
}

func (p *PrometheusRecorder) IncAuthRejected(reason string) {
	p.authRejections.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncRestaurantCreated()      { p.restaurantsCreated.Inc() }
func (p *PrometheusRecorder) IncBoxCreated()             { p.boxesCreated.Inc() }
func (p *PrometheusRecorder) IncBoxAvailabilityChanged() { p.boxAvailabilityChanges.Inc() }
func (p *PrometheusRecorder) IncFavoriteAdded()          { p.favoritesAdded.Inc() }
func (p *PrometheusRecorder) IncFavoriteRemoved()        { p.favoritesRemoved.Inc() }

func (p *PrometheusRecorder) ObserveCatalogSize(size int) {
	p.catalogSize.Observe(float64(size))
}

func (p *PrometheusRecorder) IncOrphanedReference(kind string) {
	p.orphanedReferences.WithLabelValues(kind).Inc()
}
