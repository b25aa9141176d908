package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# choretracker configuration file
# Values can be overridden by CHORETRACKER_* environment variables or CLI flags

# Base path of the task API
api_base = "/apis/"

# Backend: "dummy" answers in-process from a seeded database,
# "http" talks to server_url (see "choretracker serve")
backend = "dummy"
server_url = "http://localhost:8080"

# Dummy backend seed data: "realistic" or "empty"
fixture = "realistic"
# fixture_file = "~/.choretracker/fixture.yaml"

# Simulated latency of the dummy backend (milliseconds)
dummy_delay_ms = 200
dummy_reject_delay_ms = 150

# How long notifications stay visible (milliseconds)
notification_expiry_ms = 3000

# How often due classes are recomputed (seconds)
time_reference_interval_seconds = 10

# Listen address for "choretracker serve"
listen_addr = ":8080"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
log_actions = false
`
}
