package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// ANSI color codes for status output (used when Colored=true).
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[0;31m"
	ansiGreen  = "\033[0;32m"
	ansiYellow = "\033[0;33m"
)

// TableOptions controls how RenderTable renders the report.
type TableOptions struct {
	// Colored wraps status labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// Verbose adds a detail section per cluster with every issue, warning,
	// and recommendation spelled out.
	Verbose bool
}

// ColorStatus wraps a readiness status with ANSI codes when colored is true.
// When colored is false the string is returned unchanged (CI-safe default).
func ColorStatus(status models.ReadinessStatus, colored bool) string {
	s := string(status)
	if !colored {
		return s
	}
	switch status {
	case models.StatusReady:
		return ansiGreen + s + ansiReset
	case models.StatusReadyWithWarnings:
		return ansiYellow + s + ansiReset
	case models.StatusNeedsAttention:
		return ansiRed + s + ansiReset
	default:
		return s
	}
}

// ShortenMessage truncates msg to at most max runes, appending "..." when
// truncated. max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// statusCell returns the status padded to width characters.
// When colored, ANSI codes wrap only the text; trailing padding spaces are
// plain so subsequent columns stay visually aligned regardless of terminal
// ANSI support.
func statusCell(status models.ReadinessStatus, width int, colored bool) string {
	text := string(status)
	if !colored {
		return fmt.Sprintf("%-*s", width, text)
	}
	var code string
	switch status {
	case models.StatusReady:
		code = ansiGreen
	case models.StatusReadyWithWarnings:
		code = ansiYellow
	case models.StatusNeedsAttention:
		code = ansiRed
	default:
		return fmt.Sprintf("%-*s", width, text)
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// truncateField shortens s to at most max bytes for name columns.
// A single-char ellipsis replaces the last byte when truncation occurs.
func truncateField(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderTable writes the readiness report as a formatted text table to w.
//
// Layout: a run summary, one row per cluster, and with opts.Verbose a detail
// section per cluster listing issues, warnings, recommendations, and the
// per-addon verdicts.
func RenderTable(w io.Writer, report *models.ReadinessReport, opts TableOptions) {
	fmt.Fprintf(w, "EKS upgrade readiness: account %s, target version %s\n",
		report.AccountID, report.TargetVersion)
	fmt.Fprintf(w, "Regions: %s\n", strings.Join(report.Regions, ", "))
	fmt.Fprintf(w, "Clusters: %d total, %d ready, %d with warnings, %d need attention\n\n",
		report.Summary.TotalClusters, report.Summary.Ready,
		report.Summary.ReadyWithWarnings, report.Summary.NeedsAttention)

	if len(report.Clusters) == 0 {
		fmt.Fprintln(w, "No clusters assessed.")
		return
	}

	// Fixed column display widths.
	const (
		wCluster = 30
		wCurrent = 9
		wTarget  = 9
		wStatus  = 22
		wIssues  = 7
	)

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %s",
		wCluster, "CLUSTER",
		wCurrent, "CURRENT",
		wTarget, "TARGET",
		wStatus, "STATUS",
		wIssues, "ISSUES",
		"WARNINGS")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, c := range report.Clusters {
		fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s  %-*d  %d\n",
			wCluster, truncateField(c.ClusterName, wCluster),
			wCurrent, c.CurrentVersion,
			wTarget, c.TargetVersion,
			statusCell(c.OverallStatus, wStatus, opts.Colored),
			wIssues, len(c.BlockingIssues),
			len(c.Warnings))
	}

	if !opts.Verbose {
		return
	}

	for _, c := range report.Clusters {
		renderClusterDetail(w, c, opts)
	}
}

// renderClusterDetail writes the full finding lists for one cluster.
func renderClusterDetail(w io.Writer, c models.ClusterReadiness, opts TableOptions) {
	fmt.Fprintf(w, "\n%s (%s -> %s): %s\n",
		c.ClusterName, c.CurrentVersion, c.TargetVersion,
		ColorStatus(c.OverallStatus, opts.Colored))

	if c.CollectionError != "" {
		fmt.Fprintf(w, "  collection failed: %s\n", c.CollectionError)
	}
	if c.NoAddonsFound {
		fmt.Fprintln(w, "  no managed addons found; addon compatibility was not evaluated")
	}

	renderList(w, "Blocking issues", c.BlockingIssues)
	renderList(w, "Warnings", c.Warnings)
	renderList(w, "Recommendations", c.Recommendations)

	if len(c.AddonVerdicts) > 0 {
		fmt.Fprintln(w, "  Addons:")
		for _, v := range c.AddonVerdicts {
			line := fmt.Sprintf("    %-28s  %-22s  %s",
				truncateField(v.AddonName, 28), v.Status, ShortenMessage(v.Message, 70))
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
	if len(c.IAMVerdicts) > 0 {
		fmt.Fprintln(w, "  Addon IAM:")
		for _, v := range c.IAMVerdicts {
			fmt.Fprintf(w, "    %-28s  %s\n", truncateField(v.AddonName, 28), v.Status)
		}
	}
	if c.Inventory != nil {
		renderInventory(w, c.Inventory)
	}
}

// renderInventory writes the AWS resource inventory lines for one cluster.
func renderInventory(w io.Writer, inv *models.ResourceInventory) {
	fmt.Fprintln(w, "  AWS resources:")
	if inv.IAM.ClusterServiceRoleARN != "" {
		fmt.Fprintf(w, "    cluster service role: %s\n", inv.IAM.ClusterServiceRoleARN)
	}
	for _, arn := range inv.IAM.NodeInstanceRoleARNs {
		fmt.Fprintf(w, "    node instance role: %s\n", arn)
	}
	for _, arn := range inv.IAM.FargateExecutionRoleARNs {
		fmt.Fprintf(w, "    fargate execution role: %s\n", arn)
	}
	if inv.IAM.OIDCIssuer != "" {
		fmt.Fprintf(w, "    oidc issuer: %s\n", inv.IAM.OIDCIssuer)
	}
	if inv.Networking.VPCID != "" {
		fmt.Fprintf(w, "    vpc: %s (%d subnets, %d security groups)\n",
			inv.Networking.VPCID, len(inv.Networking.SubnetIDs), len(inv.Networking.SecurityGroupIDs))
	}
	for _, lg := range inv.Monitoring.LogGroups {
		fmt.Fprintf(w, "    log group: %s\n", lg)
	}
}

func renderList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}
