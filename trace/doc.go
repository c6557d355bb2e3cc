// Package trace renders a schedule.Schedule as a Gantt chart, in either
// a machine-readable XML form or a browser-viewable SVG form (spec.md §6
// external interfaces).
package trace
