package iam

import (
	"context"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// RoleCollector fetches the attached-policy state of an addon's IRSA role.
// Implementations must be stateless and safe to call concurrently.
type RoleCollector interface {
	// CollectRoleState resolves the role behind roleARN and its attached
	// policies. Returns a non-nil error when the role cannot be read; the
	// caller maps that to a warning-level verdict rather than aborting.
	CollectRoleState(ctx context.Context, roleARN string) (*models.AttachedRoleState, error)
}
