/* metrics.go
 * Contains the Prometheus metrics recorded by the bot
 */

package bot

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the bot handles
type Metrics struct {
	Commands            *prometheus.CounterVec
	RateLimited         prometheus.Counter
	Reactions           prometheus.Counter
	TournamentsStarted  prometheus.Counter
	TournamentsEnded    prometheus.Counter
	ProvisioningFailure prometheus.Counter
}

// NewMetrics creates the bot's metrics and registers them with reg. A nil reg uses a private registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_assistant_commands_total",
			Help: "Commands handled, by command name",
		}, []string{"command"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_assistant_rate_limited_total",
			Help: "Commands dropped because the user sent too many",
		}),
		Reactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_assistant_join_reactions_total",
			Help: "Players that joined a team by reacting",
		}),
		TournamentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_assistant_tournaments_started_total",
			Help: "Tournaments that finished setup and started running",
		}),
		TournamentsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_assistant_tournaments_ended_total",
			Help: "Tournaments that were ended",
		}),
		ProvisioningFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_assistant_provisioning_failures_total",
			Help: "Starts where the roles or channels could not be created",
		}),
	}
	reg.MustRegister(m.Commands, m.RateLimited, m.Reactions, m.TournamentsStarted, m.TournamentsEnded, m.ProvisioningFailure)
	return m
}
