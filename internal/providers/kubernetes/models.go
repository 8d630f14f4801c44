package kubernetes

import "strings"

// ClusterInfo identifies a Kubernetes cluster and the kubeconfig context used
// to connect to it.
type ClusterInfo struct {
	// ContextName is the kubeconfig context name used to connect.
	ContextName string

	// Server is the Kubernetes API server URL resolved from the kubeconfig.
	Server string
}

// EKSClusterName extracts the cluster name when the context name is an EKS
// cluster ARN, the form "aws eks update-kubeconfig" writes
// ("arn:aws:eks:eu-west-1:123456789012:cluster/prod" → "prod"). Returns
// false for hand-written context names, which carry no cluster identity.
func (c ClusterInfo) EKSClusterName() (string, bool) {
	if !strings.HasPrefix(c.ContextName, "arn:") {
		return "", false
	}
	i := strings.LastIndex(c.ContextName, "/")
	if i < 0 || i == len(c.ContextName)-1 {
		return "", false
	}
	return c.ContextName[i+1:], true
}

// NodeVersion is one node's name and reported kubelet version.
type NodeVersion struct {
	Name string

	// KubeletVersion is node.Status.NodeInfo.KubeletVersion, e.g.
	// "v1.27.9-eks-5e0fdde".
	KubeletVersion string
}

// DataPlaneState is the observed data-plane version picture for one cluster.
type DataPlaneState struct {
	ClusterInfo ClusterInfo

	Nodes []NodeVersion

	// ObservedVersion is the lowest kubelet version across all nodes. Skew
	// is checked against the oldest node so a single lagging node is not
	// masked by up-to-date ones. Empty when the cluster has no nodes.
	ObservedVersion string
}
