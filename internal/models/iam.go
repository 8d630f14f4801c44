package models

// IAMStatus classifies an addon's IAM role configuration.
type IAMStatus string

const (
	IAMStatusPass          IAMStatus = "PASS"
	IAMStatusWarning       IAMStatus = "WARNING"
	IAMStatusError         IAMStatus = "ERROR"
	IAMStatusNotApplicable IAMStatus = "NOT_APPLICABLE"
)

// IAMRequirement describes what IAM configuration an addon needs.
// Static reference data (see refdata.IAMRequirementTable), never mutated.
type IAMRequirement struct {
	AddonName string `json:"addon_name"`

	// RequiresIAM is nil when the addon is known but its IAM needs are not;
	// the resolver treats nil as "verify manually" rather than guessing.
	RequiresIAM *bool `json:"requires_iam"`

	// ManagedPolicyARNs are the AWS managed policies the addon's role must
	// carry. May be empty for addons that use custom policies only.
	ManagedPolicyARNs []string `json:"managed_policy_arns,omitempty"`

	// AllowsCustomPolicy marks addons (e.g. aws-load-balancer-controller)
	// whose permissions are typically granted through a customer-authored
	// policy instead of a managed one.
	AllowsCustomPolicy bool `json:"allows_custom_policy,omitempty"`

	ServiceAccount string `json:"service_account,omitempty"`
	Namespace      string `json:"namespace,omitempty"`
	Description    string `json:"description,omitempty"`
}

// AttachedPolicy is one policy attached to an addon's IRSA role.
type AttachedPolicy struct {
	ARN  string `json:"arn"`
	Name string `json:"name"`

	// AWSManaged is true for policies under arn:aws:iam::aws:policy/.
	AWSManaged bool `json:"aws_managed"`
}

// AttachedRoleState is the observed IAM role bound to an addon's service
// account, as returned by the IAM collaborator.
type AttachedRoleState struct {
	RoleARN  string           `json:"role_arn"`
	RoleName string           `json:"role_name"`
	Policies []AttachedPolicy `json:"policies,omitempty"`
}

// IAMVerdict is the outcome of checking one addon's IAM configuration.
// Issues and Recommendations preserve the order in which they were found.
type IAMVerdict struct {
	AddonName       string    `json:"addon_name"`
	Status          IAMStatus `json:"status"`
	Issues          []string  `json:"issues,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
}
