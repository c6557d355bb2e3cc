// Package pisdflog provides the shared structured-logging setup used by
// runtime and cmd/pisdfrun: a single hclog.Logger factory so every component
// logs at a consistent level with a consistent name prefix.
package pisdflog
