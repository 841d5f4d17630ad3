package monitoring

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	IdentitiesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "identities_issued_total",
		Help: "Total identities issued",
	})

	CredentialResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "credential_resolutions_total",
		Help: "Credential resolutions by outcome",
	}, []string{"mode", "outcome"})

	CredentialScanLength = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "credential_scan_verifications",
		Help:    "Hash verifications performed per linear credential scan.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total comments created",
	})

	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total notifications created",
	}, []string{"type"})

	Reactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reactions_total",
		Help: "Total reaction writes",
	}, []string{"emoji"})

	SubmissionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submissions_created_total",
		Help: "Total submissions received",
	})

	Publishes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submission_publishes_total",
		Help: "Publish attempts by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(IdentitiesIssued)
	prometheus.MustRegister(CredentialResolutions)
	prometheus.MustRegister(CredentialScanLength)
	prometheus.MustRegister(CommentsCreated)
	prometheus.MustRegister(NotificationsCreated)
	prometheus.MustRegister(Reactions)
	prometheus.MustRegister(SubmissionsCreated)
	prometheus.MustRegister(Publishes)
}

// Instrument records request timing per route template.
func Instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		RequestDuration.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}
