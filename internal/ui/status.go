package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/provisioning/readiness"
)

// RenderStatus writes one row per node with the result of a single
// readiness check. records must be in the same order as instances.
func RenderStatus(w io.Writer, cluster string, instances []ec2.Instance, records []readiness.ReadinessRecord, tty bool) error {
	if len(instances) == 0 {
		_, err := fmt.Fprintf(w, "Cluster %s has no running instances.\n", cluster)
		return err
	}

	data := pterm.TableData{{"ID", "NAME", "HOST", "PRIVATE IP", "STATE", "SYSTEM", "INSTANCE", "SSH", "READY"}}
	ready := 0
	for i, inst := range instances {
		var rec readiness.ReadinessRecord
		if i < len(records) {
			rec = records[i]
		}
		if rec.Ready() {
			ready++
		}
		data = append(data, []string{
			inst.ID,
			inst.Name,
			inst.Address(),
			inst.PrivateIP,
			string(inst.State),
			mark(rec.SystemOK, tty),
			mark(rec.InstanceOK, tty),
			mark(rec.Reachable, tty),
			mark(rec.Ready(), tty),
		})
	}

	printer := pterm.DefaultTable.WithHasHeader().WithData(data)
	if tty {
		printer = printer.WithBoxed()
	}
	out, err := printer.Srender()
	if err != nil {
		return fmt.Errorf("failed to render status table: %w", err)
	}

	_, err = fmt.Fprintf(w, "Cluster %s: %d/%d nodes ready\n%s\n", cluster, ready, len(instances), out)
	return err
}

func mark(ok, tty bool) string {
	if !tty {
		if ok {
			return "yes"
		}
		return "no"
	}
	if ok {
		return checkMark
	}
	return failedStyle.Render(crossMark)
}
