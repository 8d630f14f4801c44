package assessment

import (
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// ClassifyAddonIAM checks one addon's observed IAM role against its
// requirement descriptor. req is nil for addons missing from the requirement
// table; role is nil when the addon has no service-account role configured
// or the role could not be retrieved. Both nils are legal inputs and map to
// a classification, never an error.
//
// Decision order:
//
//  1. unknown addon (nil requirement) → WARNING, verify manually
//  2. IAM not required → NOT_APPLICABLE
//  3. IAM required but no role → ERROR
//  4. IAM needs unknown and no role → WARNING
//  5. role present → compare attached policies against the requirement
func ClassifyAddonIAM(addonName string, req *models.IAMRequirement, role *models.AttachedRoleState) models.IAMVerdict {
	if req == nil {
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusWarning,
			Issues:    []string{fmt.Sprintf("unknown addon %s: IAM requirements not defined", addonName)},
			Recommendations: []string{
				"manual verification required: check the addon documentation for IAM requirements",
			},
		}
	}

	if req.RequiresIAM != nil && !*req.RequiresIAM {
		return models.IAMVerdict{AddonName: addonName, Status: models.IAMStatusNotApplicable}
	}

	if role == nil {
		if req.RequiresIAM == nil {
			return models.IAMVerdict{
				AddonName: addonName,
				Status:    models.IAMStatusWarning,
				Issues:    []string{fmt.Sprintf("IAM needs for %s are unknown and no service account role is configured", addonName)},
				Recommendations: []string{
					"manual verification required: confirm whether the addon needs an IAM role",
				},
			}
		}
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusError,
			Issues:    []string{fmt.Sprintf("addon %s requires an IAM role but none is configured", addonName)},
			Recommendations: []string{fmt.Sprintf(
				"configure an IAM role with the required policies: %s",
				policyShortNames(req.ManagedPolicyARNs),
			)},
		}
	}

	return classifyAttachedPolicies(addonName, req, role)
}

// classifyAttachedPolicies handles the role-present branch: the cross of
// "required managed policies missing" against "custom policies attached".
func classifyAttachedPolicies(addonName string, req *models.IAMRequirement, role *models.AttachedRoleState) models.IAMVerdict {
	attached := make(map[string]bool, len(role.Policies))
	var custom []string
	for _, p := range role.Policies {
		attached[p.ARN] = true
		if !p.AWSManaged {
			custom = append(custom, p.Name)
		}
	}

	var missing []string
	for _, arn := range req.ManagedPolicyARNs {
		if !attached[arn] {
			missing = append(missing, arn)
		}
	}

	// Addons whose permissions normally come from a customer-authored
	// policy have no managed-policy baseline to diff against.
	if len(req.ManagedPolicyARNs) == 0 && req.AllowsCustomPolicy {
		if len(custom) > 0 {
			return models.IAMVerdict{
				AddonName: addonName,
				Status:    models.IAMStatusWarning,
				Issues:    []string{fmt.Sprintf("using custom policies: %s", strings.Join(custom, ", "))},
				Recommendations: []string{
					"verify the custom policies grant the permissions the addon needs",
				},
			}
		}
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusWarning,
			Issues:    []string{fmt.Sprintf("addon %s typically requires a custom IAM policy but none is attached", addonName)},
			Recommendations: []string{
				"review the addon documentation and attach an appropriate IAM policy",
			},
		}
	}

	switch {
	case len(missing) > 0 && len(custom) > 0:
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusWarning,
			Issues: []string{
				fmt.Sprintf("missing expected AWS managed policies: %s", policyShortNames(missing)),
				fmt.Sprintf("using custom policies: %s", strings.Join(custom, ", ")),
			},
			Recommendations: []string{
				"verify the custom policies provide equivalent permissions to the AWS managed policies",
				fmt.Sprintf("consider using the AWS managed policies: %s", policyShortNames(missing)),
			},
		}

	case len(missing) > 0:
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusError,
			Issues:    []string{fmt.Sprintf("missing required AWS managed policies: %s", policyShortNames(missing))},
			Recommendations: []string{
				fmt.Sprintf("attach the required policies: %s", policyShortNames(missing)),
			},
		}

	case len(custom) > 0:
		return models.IAMVerdict{
			AddonName: addonName,
			Status:    models.IAMStatusWarning,
			Issues:    []string{fmt.Sprintf("using additional custom policies: %s", strings.Join(custom, ", "))},
			Recommendations: []string{
				"verify the custom policies are necessary and follow least privilege",
			},
		}
	}

	return models.IAMVerdict{AddonName: addonName, Status: models.IAMStatusPass}
}

// policyShortNames renders ARNs as their trailing policy names for display:
// arn:aws:iam::aws:policy/service-role/AmazonEBSCSIDriverPolicy →
// AmazonEBSCSIDriverPolicy.
func policyShortNames(arns []string) string {
	names := make([]string, 0, len(arns))
	for _, arn := range arns {
		if i := strings.LastIndex(arn, "/"); i >= 0 {
			names = append(names, arn[i+1:])
		} else {
			names = append(names, arn)
		}
	}
	return strings.Join(names, ", ")
}
