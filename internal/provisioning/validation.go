package provisioning

import (
	"fmt"
	"strings"

	"github.com/imamik/cassandra-ec2/internal/config"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
// It runs before anything is created or modified.
type ValidationPhase struct {
	// Launch enables the checks only needed when nodes may be launched
	// and configured (identity file, key pair).
	Launch bool
}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase(launch bool) *ValidationPhase {
	return &ValidationPhase{Launch: launch}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[Validation] Running pre-flight validation...")

	var errs []ValidationError
	for _, ve := range vp.validate(ctx.Spec) {
		if ve.IsError() {
			errs = append(errs, ve)
			continue
		}
		LogValidationWarning(ctx.Observer, ve.Field, ve.Message)
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("%w: validation failed:\n  %s", config.ErrConfig, strings.Join(msgs, "\n  "))
	}

	identity, err := ctx.EC2.CallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify AWS credentials: %w", err)
	}
	ctx.State.Identity = identity
	ctx.Observer.Printf("[Validation] Using AWS account %s (%s)", identity.Account, identity.ARN)

	ctx.Observer.Printf("[Validation] Validation passed")
	return nil
}

// validate runs all validation checks and returns any errors or warnings.
func (vp *ValidationPhase) validate(spec *config.ClusterSpec) []ValidationError {
	var errs []ValidationError

	if err := spec.Validate(); err != nil {
		errs = append(errs, ValidationError{
			Field:    "spec",
			Message:  strings.TrimPrefix(err.Error(), config.ErrConfig.Error()+": "),
			Severity: "error",
		})
	}

	if vp.Launch {
		if err := spec.ValidateForLaunch(); err != nil {
			errs = append(errs, ValidationError{
				Field:    "ssh",
				Message:  strings.TrimPrefix(err.Error(), config.ErrConfig.Error()+": "),
				Severity: "error",
			})
		}
	}

	if disks, known := config.DiskCount(spec.InstanceType); !known {
		msg := fmt.Sprintf("instance type %s is not in the disk table, attaching an EBS volume instead of instance storage",
			spec.InstanceType)
		if config.InstanceStoreFamily(spec.InstanceType) {
			msg = fmt.Sprintf("instance type %s is not in the disk table, assuming %d instance-store disk(s)",
				spec.InstanceType, disks)
		}
		errs = append(errs, ValidationError{
			Field:    "instance_type",
			Message:  msg,
			Severity: "warning",
		})
	}

	if spec.Volume.SizeGB == 0 {
		errs = append(errs, ValidationError{
			Field:    "volume.size_gb",
			Message:  "volume size is 0, nodes are launched without extra block devices",
			Severity: "warning",
		})
	}

	if spec.Concurrency > spec.NodeCount && spec.NodeCount > 0 {
		errs = append(errs, ValidationError{
			Field:    "concurrency",
			Message:  fmt.Sprintf("concurrency %d exceeds node count %d", spec.Concurrency, spec.NodeCount),
			Severity: "warning",
		})
	}

	return errs
}
