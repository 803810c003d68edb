// Package ui renders the operator-facing reports of a run: the final
// cluster summary and the read-only status table.
package ui
