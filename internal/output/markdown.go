package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// markdownTemplate renders the report for sharing in wikis and pull
// requests. Cluster detail sections repeat the full finding lists; the
// summary table is the at-a-glance view.
const markdownTemplate = `# EKS Upgrade Readiness Report

- **Report ID:** {{ .ReportID }}
- **Generated:** {{ .GeneratedAt.Format "2006-01-02 15:04:05 UTC" }}
- **Account:** {{ .AccountID }} (profile {{ .Profile }})
- **Regions:** {{ join .Regions ", " }}
- **Target version:** {{ .TargetVersion }}

## Summary

{{ .Summary.TotalClusters }} cluster(s) assessed: {{ .Summary.Ready }} ready, {{ .Summary.ReadyWithWarnings }} ready with warnings, {{ .Summary.NeedsAttention }} need attention.

| Cluster | Current | Target | Status | Blocking issues | Warnings | Deprecated APIs |
|---------|---------|--------|--------|-----------------|----------|-----------------|
{{- range .Clusters }}
| {{ .ClusterName }} | {{ .CurrentVersion }} | {{ .TargetVersion }} | {{ .OverallStatus }} | {{ len .BlockingIssues }} | {{ len .Warnings }} | {{ deprecated . }} |
{{- end }}
{{ range .Clusters }}
## {{ .ClusterName }}: {{ .OverallStatus }}

{{- if .CollectionError }}

Collection failed: {{ .CollectionError }}
{{- end }}
{{- if .NoAddonsFound }}

No managed addons found; addon compatibility was not evaluated.
{{- end }}
{{- if .BlockingIssues }}

### Blocking issues

{{- range .BlockingIssues }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Warnings }}

### Warnings

{{- range .Warnings }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .Recommendations }}

### Recommendations

{{- range .Recommendations }}
- {{ . }}
{{- end }}
{{- end }}
{{- if .AddonVerdicts }}

### Addons

| Addon | Status | Recommended | Detail |
|-------|--------|-------------|--------|
{{- range .AddonVerdicts }}
| {{ .AddonName }} | {{ .Status }} | {{ .RecommendedVersion }} | {{ .Message }} |
{{- end }}
{{- end }}
{{- if .IAMVerdicts }}

### Addon IAM

| Addon | Status |
|-------|--------|
{{- range .IAMVerdicts }}
| {{ .AddonName }} | {{ .Status }} |
{{- end }}
{{- end }}
{{- if .Inventory }}

### AWS resources

- Cluster service role: {{ orNone .Inventory.IAM.ClusterServiceRoleARN }}
- Node instance roles: {{ listOrNone .Inventory.IAM.NodeInstanceRoleARNs }}
- Fargate execution roles: {{ listOrNone .Inventory.IAM.FargateExecutionRoleARNs }}
- OIDC issuer: {{ orNone .Inventory.IAM.OIDCIssuer }}
- VPC: {{ orNone .Inventory.Networking.VPCID }} ({{ len .Inventory.Networking.SubnetIDs }} subnets, {{ len .Inventory.Networking.SecurityGroupIDs }} security groups)
- CloudWatch log groups: {{ listOrNone .Inventory.Monitoring.LogGroups }}

Load balancers, persistent volumes, and workload secrets are not visible to this inventory; discover them through the cluster before upgrading.
{{- end }}
{{ end }}`

var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
	"orNone": func(s string) string {
		if s == "" {
			return "none found"
		}
		return s
	},
	"listOrNone": func(items []string) string {
		if len(items) == 0 {
			return "none found"
		}
		return strings.Join(items, ", ")
	},
	"deprecated": func(c models.ClusterReadiness) string {
		total := 0
		for _, n := range c.Signals.DeprecatedAPICounts {
			total += n
		}
		if len(c.Signals.DeprecatedAPICounts) == 0 {
			return "not checked"
		}
		return fmt.Sprintf("%d", total)
	},
}).Parse(markdownTemplate))

// RenderMarkdown writes the report as a Markdown document to w.
func RenderMarkdown(w io.Writer, report *models.ReadinessReport) error {
	if err := markdownTmpl.Execute(w, report); err != nil {
		return fmt.Errorf("rendering markdown report: %w", err)
	}
	return nil
}
