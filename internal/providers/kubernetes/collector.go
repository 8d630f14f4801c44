package kubernetes

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/versions"
)

// CollectDataPlaneState lists the cluster's nodes and derives the observed
// data-plane version from their kubelet versions.
//
// The clientset parameter is an interface so tests can inject a fake clientset.
func CollectDataPlaneState(ctx context.Context, clientset k8sclient.Interface, info ClusterInfo) (*DataPlaneState, error) {
	nodeList, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	nodes := make([]NodeVersion, 0, len(nodeList.Items))
	for _, n := range nodeList.Items {
		nodes = append(nodes, NodeVersion{
			Name:           n.Name,
			KubeletVersion: n.Status.NodeInfo.KubeletVersion,
		})
	}

	return &DataPlaneState{
		ClusterInfo:     info,
		Nodes:           nodes,
		ObservedVersion: lowestKubeletVersion(nodes),
	}, nil
}

// lowestKubeletVersion returns the oldest parseable kubelet version among
// nodes, empty when none parses.
func lowestKubeletVersion(nodes []NodeVersion) string {
	lowest := ""
	var lowestParsed versions.Version
	for _, n := range nodes {
		parsed, ok := versions.Parse(n.KubeletVersion)
		if !ok {
			continue
		}
		if lowest == "" || versions.Compare(parsed, lowestParsed) < 0 {
			lowest = n.KubeletVersion
			lowestParsed = parsed
		}
	}
	return lowest
}
