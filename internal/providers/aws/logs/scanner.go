// Package logs checks EKS control-plane audit logs for deprecated API usage
// via CloudWatch Logs Insights. It requires audit logging to be enabled on
// the cluster; a missing log group is reported as an error the engine
// downgrades to a skipped check.
package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwlogs "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// deprecatedAPIQuery matches audit events the API server annotated as
// deprecated API calls.
const deprecatedAPIQuery = "fields @message | filter `annotations.k8s.io/deprecated`=\"true\""

// AuditLogScanner counts deprecated-API requests recorded in a cluster's
// control-plane audit log.
type AuditLogScanner interface {
	// CountDeprecatedAPIRequests runs a Logs Insights query over the
	// cluster's audit log group for the given lookback window and returns
	// the number of matching requests.
	CountDeprecatedAPIRequests(ctx context.Context, clusterName string, window time.Duration) (int, error)

	// ListClusterLogGroups reports which of the cluster's well-known
	// CloudWatch log groups exist: the control-plane log group and the
	// Container Insights groups. Consumed by the resource inventory.
	ListClusterLogGroups(ctx context.Context, clusterName string) ([]string, error)
}

// DefaultAuditLogScanner implements AuditLogScanner using the AWS SDK v2.
type DefaultAuditLogScanner struct {
	client logsAPIClient

	// pollInterval is how often GetQueryResults is polled while the query
	// runs. Shortened in tests.
	pollInterval time.Duration
}

// NewAuditLogScanner returns an AuditLogScanner backed by the real
// CloudWatch Logs API.
func NewAuditLogScanner(cfg aws.Config) *DefaultAuditLogScanner {
	return &DefaultAuditLogScanner{client: cwlogs.NewFromConfig(cfg), pollInterval: 2 * time.Second}
}

// newScannerWithClient is the test seam.
func newScannerWithClient(client logsAPIClient, poll time.Duration) *DefaultAuditLogScanner {
	return &DefaultAuditLogScanner{client: client, pollInterval: poll}
}

// clusterLogGroupNames returns the log groups EKS and Container Insights
// create for a cluster.
func clusterLogGroupNames(clusterName string) []string {
	return []string{
		fmt.Sprintf("/aws/eks/%s/cluster", clusterName),
		fmt.Sprintf("/aws/containerinsights/%s/application", clusterName),
		fmt.Sprintf("/aws/containerinsights/%s/dataplane", clusterName),
		fmt.Sprintf("/aws/containerinsights/%s/host", clusterName),
		fmt.Sprintf("/aws/containerinsights/%s/performance", clusterName),
	}
}

// ListClusterLogGroups looks up each well-known log group by exact name and
// returns the ones that exist. A failed lookup skips that group unless the
// context itself expired.
func (s *DefaultAuditLogScanner) ListClusterLogGroups(ctx context.Context, clusterName string) ([]string, error) {
	var found []string
	for _, name := range clusterLogGroupNames(clusterName) {
		out, err := s.client.DescribeLogGroups(ctx, &cwlogs.DescribeLogGroupsInput{
			LogGroupNamePrefix: aws.String(name),
			Limit:              aws.Int32(1),
		})
		if err != nil {
			if ctx.Err() != nil {
				return found, ctx.Err()
			}
			continue
		}
		for _, lg := range out.LogGroups {
			if aws.ToString(lg.LogGroupName) == name {
				found = append(found, name)
			}
		}
	}
	return found, nil
}

// CountDeprecatedAPIRequests starts a Logs Insights query on the cluster's
// audit log group and polls until the query completes or ctx is done.
func (s *DefaultAuditLogScanner) CountDeprecatedAPIRequests(ctx context.Context, clusterName string, window time.Duration) (int, error) {
	logGroup := fmt.Sprintf("/aws/eks/%s/cluster", clusterName)
	end := time.Now()
	start := end.Add(-window)

	startOut, err := s.client.StartQuery(ctx, &cwlogs.StartQueryInput{
		LogGroupName: aws.String(logGroup),
		StartTime:    aws.Int64(start.Unix()),
		EndTime:      aws.Int64(end.Unix()),
		QueryString:  aws.String(deprecatedAPIQuery),
	})
	if err != nil {
		return 0, fmt.Errorf("start audit log query for %q: %w", clusterName, err)
	}

	for {
		out, err := s.client.GetQueryResults(ctx, &cwlogs.GetQueryResultsInput{
			QueryId: startOut.QueryId,
		})
		if err != nil {
			return 0, fmt.Errorf("get audit log query results for %q: %w", clusterName, err)
		}

		switch out.Status {
		case types.QueryStatusComplete:
			return len(out.Results), nil
		case types.QueryStatusFailed, types.QueryStatusCancelled, types.QueryStatusTimeout:
			return 0, fmt.Errorf("audit log query for %q ended with status %s", clusterName, out.Status)
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("audit log query for %q: %w", clusterName, ctx.Err())
		case <-time.After(s.pollInterval):
		}
	}
}
