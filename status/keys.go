package status

// Metric keys written by the coordinator and the tornado
const (
	KeyWorldStepsIssued  = "world.steps_issued"
	KeyWorldStepsSkipped = "world.steps_skipped"
	KeyWorldInFlight     = "world.in_flight"
	KeyWorldStepDt       = "world.step_dt"
	KeyWorldPeakDt       = "world.peak_dt"
	KeyWorldQueued       = "world.queued"

	KeyPlayerStepsIssued  = "player.steps_issued"
	KeyPlayerStepsSkipped = "player.steps_skipped"
	KeyPlayerInFlight     = "player.in_flight"
	KeyPlayerStepDt       = "player.step_dt"
	KeyPlayerPeakDt       = "player.peak_dt"
	KeyPlayerQueued       = "player.queued"

	KeyBodies      = "bodies.active"
	KeyDisposals   = "bodies.disposed"
	KeyStaleDrops  = "updates.stale_dropped"
	KeyUnanchored  = "bodies.unanchored"
	KeyCaptures    = "tornado.captures"
	KeyTornadoMode = "tornado.state"

	KeyFeedClients = "feed.clients"
	KeyFeedDropped = "feed.dropped"
)
