package iam

import (
	"context"

	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
)

// iamAPIClient is the subset of IAM operations used by the role collector.
type iamAPIClient interface {
	GetRole(
		ctx context.Context,
		params *awsiam.GetRoleInput,
		optFns ...func(*awsiam.Options),
	) (*awsiam.GetRoleOutput, error)

	ListAttachedRolePolicies(
		ctx context.Context,
		params *awsiam.ListAttachedRolePoliciesInput,
		optFns ...func(*awsiam.Options),
	) (*awsiam.ListAttachedRolePoliciesOutput, error)
}
