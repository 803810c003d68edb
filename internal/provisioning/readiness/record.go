package readiness

// ReadinessRecord is the per-node result of one poll cycle.
type ReadinessRecord struct {
	InstanceID string
	Host       string
	Running    bool
	SystemOK   bool
	InstanceOK bool
	Reachable  bool
}

// Ready reports whether every condition holds.
func (r ReadinessRecord) Ready() bool {
	return r.Running && r.SystemOK && r.InstanceOK && r.Reachable
}

// FleetReady reports whether every record is ready. An empty fleet is
// never ready.
func FleetReady(records []ReadinessRecord) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if !r.Ready() {
			return false
		}
	}
	return true
}

// countReady returns how many records are ready.
func countReady(records []ReadinessRecord) int {
	n := 0
	for _, r := range records {
		if r.Ready() {
			n++
		}
	}
	return n
}
