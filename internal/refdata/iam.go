// Package refdata holds the reference data the assessment runs against:
// per-target-version addon version ranges (fetched from the EKS API and
// cached on disk) and the static addon IAM requirement table.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

func truePtr() *bool  { b := true; return &b }
func falsePtr() *bool { b := false; return &b }

// addonIAMRequirements maps addon names to their IAM needs. Addons absent
// from the table classify as WARNING (manual verification) downstream.
var addonIAMRequirements = map[string]models.IAMRequirement{
	"aws-ebs-csi-driver": {
		AddonName:   "aws-ebs-csi-driver",
		Description: "Amazon EBS CSI Driver for persistent volume support",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/service-role/AmazonEBSCSIDriverPolicy",
		},
		ServiceAccount: "ebs-csi-controller-sa",
		Namespace:      "kube-system",
	},
	"aws-efs-csi-driver": {
		AddonName:   "aws-efs-csi-driver",
		Description: "Amazon EFS CSI Driver for shared file system support",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/service-role/AmazonEFSCSIDriverPolicy",
		},
		ServiceAccount: "efs-csi-controller-sa",
		Namespace:      "kube-system",
	},
	"aws-fsx-csi-driver": {
		AddonName:   "aws-fsx-csi-driver",
		Description: "Amazon FSx CSI Driver for high-performance file systems",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/service-role/AmazonFSxCSIDriverServiceRolePolicy",
		},
		ServiceAccount: "fsx-csi-controller-sa",
		Namespace:      "kube-system",
	},
	"aws-mountpoint-s3-csi-driver": {
		AddonName:   "aws-mountpoint-s3-csi-driver",
		Description: "Mountpoint for Amazon S3 CSI Driver",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/AmazonS3ReadOnlyAccess",
		},
		AllowsCustomPolicy: true,
		ServiceAccount:     "s3-csi-driver-sa",
		Namespace:          "kube-system",
	},
	"aws-load-balancer-controller": {
		AddonName:          "aws-load-balancer-controller",
		Description:        "AWS Load Balancer Controller for ALB/NLB integration",
		RequiresIAM:        truePtr(),
		AllowsCustomPolicy: true,
		ServiceAccount:     "aws-load-balancer-controller",
		Namespace:          "kube-system",
	},
	"amazon-cloudwatch-observability": {
		AddonName:   "amazon-cloudwatch-observability",
		Description: "Amazon CloudWatch Observability add-on",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/CloudWatchAgentServerPolicy",
			"arn:aws:iam::aws:policy/AWSXRayDaemonWriteAccess",
		},
		ServiceAccount: "cloudwatch-agent",
		Namespace:      "amazon-cloudwatch",
	},
	"adot": {
		AddonName:   "adot",
		Description: "AWS Distro for OpenTelemetry",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/AmazonPrometheusRemoteWriteAccess",
			"arn:aws:iam::aws:policy/AWSXRayDaemonWriteAccess",
			"arn:aws:iam::aws:policy/CloudWatchAgentServerPolicy",
		},
		ServiceAccount: "adot-collector",
		Namespace:      "opentelemetry-operator-system",
	},
	"aws-guardduty-agent": {
		AddonName:   "aws-guardduty-agent",
		Description: "Amazon GuardDuty security monitoring agent",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/AmazonEKSWorkerNodePolicy",
		},
		ServiceAccount: "aws-guardduty-agent",
		Namespace:      "amazon-guardduty",
	},
	"vpc-cni": {
		AddonName:   "vpc-cni",
		Description: "Amazon VPC CNI plugin for pod networking",
		RequiresIAM: truePtr(),
		ManagedPolicyARNs: []string{
			"arn:aws:iam::aws:policy/AmazonEKS_CNI_Policy",
		},
		ServiceAccount: "aws-node",
		Namespace:      "kube-system",
	},
	"coredns": {
		AddonName:   "coredns",
		Description: "CoreDNS for cluster DNS resolution",
		RequiresIAM: falsePtr(),
	},
	"kube-proxy": {
		AddonName:   "kube-proxy",
		Description: "Kubernetes network proxy",
		RequiresIAM: falsePtr(),
	},
	"eks-pod-identity-agent": {
		AddonName:   "eks-pod-identity-agent",
		Description: "EKS Pod Identity Agent",
		RequiresIAM: falsePtr(),
	},
	"snapshot-controller": {
		AddonName:   "snapshot-controller",
		Description: "Volume snapshot controller for CSI drivers",
		RequiresIAM: falsePtr(),
	},
	"metrics-server": {
		AddonName:   "metrics-server",
		Description: "Kubernetes Metrics Server for resource metrics",
		RequiresIAM: falsePtr(),
	},
}

// IAMRequirementTable answers IAM requirement lookups for addons, with
// optional overrides layered over the built-in data.
type IAMRequirementTable struct {
	requirements map[string]models.IAMRequirement
}

// DefaultIAMRequirements returns the built-in table.
func DefaultIAMRequirements() *IAMRequirementTable {
	return &IAMRequirementTable{requirements: addonIAMRequirements}
}

// LoadIAMRequirements layers overrides from a JSON file over the built-in
// table. The file maps addon name to requirement descriptor; entries replace
// built-in ones wholesale.
func LoadIAMRequirements(path string) (*IAMRequirementTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading IAM requirements: %w", err)
	}

	var overrides map[string]models.IAMRequirement
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing IAM requirements %s: %w", path, err)
	}

	merged := make(map[string]models.IAMRequirement, len(addonIAMRequirements)+len(overrides))
	for name, req := range addonIAMRequirements {
		merged[name] = req
	}
	for name, req := range overrides {
		if req.AddonName == "" {
			req.AddonName = name
		}
		merged[name] = req
	}
	return &IAMRequirementTable{requirements: merged}, nil
}

// Lookup returns the requirement for an addon, or nil when the addon is
// absent from the table. The returned value is a copy.
func (t *IAMRequirementTable) Lookup(addonName string) *models.IAMRequirement {
	req, ok := t.requirements[addonName]
	if !ok {
		return nil
	}
	return &req
}
