package iam

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

const awsManagedPolicyPrefix = "arn:aws:iam::aws:policy/"

// DefaultRoleCollector implements RoleCollector using the AWS SDK v2.
type DefaultRoleCollector struct {
	client iamAPIClient
}

// NewRoleCollector returns a RoleCollector backed by the real IAM API.
func NewRoleCollector(cfg aws.Config) *DefaultRoleCollector {
	return &DefaultRoleCollector{client: awsiam.NewFromConfig(cfg)}
}

// newCollectorWithClient is the test seam.
func newCollectorWithClient(client iamAPIClient) *DefaultRoleCollector {
	return &DefaultRoleCollector{client: client}
}

// CollectRoleState resolves roleARN via GetRole and gathers all attached
// managed policies, following the ListAttachedRolePolicies marker.
func (c *DefaultRoleCollector) CollectRoleState(ctx context.Context, roleARN string) (*models.AttachedRoleState, error) {
	roleName := roleNameFromARN(roleARN)
	if roleName == "" {
		return nil, fmt.Errorf("invalid role ARN %q", roleARN)
	}

	if _, err := c.client.GetRole(ctx, &awsiam.GetRoleInput{RoleName: aws.String(roleName)}); err != nil {
		return nil, fmt.Errorf("get IAM role %q: %w", roleName, err)
	}

	state := &models.AttachedRoleState{RoleARN: roleARN, RoleName: roleName}

	var marker *string
	for {
		out, err := c.client.ListAttachedRolePolicies(ctx, &awsiam.ListAttachedRolePoliciesInput{
			RoleName: aws.String(roleName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("list attached policies for role %q: %w", roleName, err)
		}
		for _, p := range out.AttachedPolicies {
			arn := aws.ToString(p.PolicyArn)
			state.Policies = append(state.Policies, models.AttachedPolicy{
				ARN:        arn,
				Name:       aws.ToString(p.PolicyName),
				AWSManaged: strings.HasPrefix(arn, awsManagedPolicyPrefix),
			})
		}
		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return state, nil
}

// roleNameFromARN extracts the role name, the segment after the final slash.
// Role ARNs may carry a path (arn:...:role/path/name); the name is always
// last.
func roleNameFromARN(arn string) string {
	i := strings.LastIndex(arn, "/")
	if i < 0 || i == len(arn)-1 {
		return ""
	}
	return arn[i+1:]
}
