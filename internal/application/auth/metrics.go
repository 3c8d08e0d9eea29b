package auth

import "github.com/prometheus/client_golang/prometheus"

// Login funnel metrics.
var (
	loginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts per backend and outcome.",
		},
		[]string{"backend", "outcome"}, // outcome: success | rejected
	)

	loginExhaustedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_login_exhausted_total",
		Help: "Logins rejected by every backend in the chain.",
	})

	logoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logout_total",
			Help: "Logouts per active role.",
		},
		[]string{"role"},
	)
)

func init() {
	prometheus.MustRegister(loginAttemptsTotal, loginExhaustedTotal, logoutTotal)
}
