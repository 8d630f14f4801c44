package models

// ResourceInventory catalogs the AWS resources tied to one EKS cluster.
// These live outside the cluster and outside Kubernetes-level backups, so
// upgrades and disaster recovery must account for them separately. Resources
// only the Kubernetes API can see (load balancers created by controllers,
// persistent volumes, workload secrets) are not listed here; renderers flag
// them for manual discovery.
type ResourceInventory struct {
	ClusterName string `json:"cluster_name"`

	IAM        InventoryIAM        `json:"iam"`
	Networking InventoryNetworking `json:"networking"`
	Monitoring InventoryMonitoring `json:"monitoring"`
}

// InventoryIAM is the IAM surface of a cluster: the control-plane service
// role, node instance roles, Fargate pod execution roles, and the OIDC
// issuer backing IRSA.
type InventoryIAM struct {
	ClusterServiceRoleARN    string   `json:"cluster_service_role_arn,omitempty"`
	NodeInstanceRoleARNs     []string `json:"node_instance_role_arns,omitempty"`
	FargateExecutionRoleARNs []string `json:"fargate_execution_role_arns,omitempty"`
	OIDCIssuer               string   `json:"oidc_issuer,omitempty"`
}

// InventoryNetworking is the VPC configuration the cluster runs in.
type InventoryNetworking struct {
	VPCID            string   `json:"vpc_id,omitempty"`
	SubnetIDs        []string `json:"subnet_ids,omitempty"`
	SecurityGroupIDs []string `json:"security_group_ids,omitempty"`
}

// InventoryMonitoring lists the CloudWatch log groups that exist for the
// cluster: the control-plane log group and the Container Insights groups.
type InventoryMonitoring struct {
	LogGroups []string `json:"log_groups,omitempty"`
}
