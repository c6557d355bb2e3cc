// Package platform describes the target execution topology: clusters of
// processing elements grouped by memory kind, loaded from a YAML
// description (spec.md §6 external interfaces).
package platform
