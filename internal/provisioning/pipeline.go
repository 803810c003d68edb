package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially. The first
// failing phase stops the run. While a phase runs, ctx.Observer carries a
// "phase" field; the original observer is restored afterwards.
func RunPhases(ctx *Context, phases []Phase) error {
	base := ctx.Observer
	defer func() { ctx.Observer = base }()

	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s phase not started: %w", phase.Name(), err)
		}

		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		ctx.Observer = base.WithFields(map[string]string{"phase": phase.Name()})
		err := phase.Provision(ctx)
		ctx.Observer = base
		ctx.Metrics.ObservePhase(phase.Name(), time.Since(phaseStart).Seconds())
		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
