package logs

import (
	"context"

	cwlogs "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// logsAPIClient is the subset of CloudWatch Logs operations used by the
// audit scanner.
type logsAPIClient interface {
	StartQuery(
		ctx context.Context,
		params *cwlogs.StartQueryInput,
		optFns ...func(*cwlogs.Options),
	) (*cwlogs.StartQueryOutput, error)

	GetQueryResults(
		ctx context.Context,
		params *cwlogs.GetQueryResultsInput,
		optFns ...func(*cwlogs.Options),
	) (*cwlogs.GetQueryResultsOutput, error)

	DescribeLogGroups(
		ctx context.Context,
		params *cwlogs.DescribeLogGroupsInput,
		optFns ...func(*cwlogs.Options),
	) (*cwlogs.DescribeLogGroupsOutput, error)
}
