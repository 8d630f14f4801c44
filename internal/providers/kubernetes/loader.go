package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"

	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// kubeconfigPath returns the kubeconfig file to load: $KUBECONFIG when set,
// otherwise ~/.kube/config.
func kubeconfigPath() string {
	if path := os.Getenv("KUBECONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kube", "config")
}

// LoadClientset builds a clientset from the kubeconfig at path for the named
// context (empty selects the current context), returning it together with
// the ClusterInfo the readiness engine matches against assessed clusters.
func LoadClientset(path, contextName string) (k8sclient.Interface, ClusterInfo, error) {
	rules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: path}
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	cfg := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	info, err := resolveClusterInfo(cfg, contextName)
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("load kubeconfig %q: %w", path, err)
	}

	restCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("build REST config for context %q: %w", info.ContextName, err)
	}
	clientset, err := k8sclient.NewForConfig(restCfg)
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("build clientset for context %q: %w", info.ContextName, err)
	}

	return clientset, info, nil
}

// resolveClusterInfo reads the effective context name and API server URL out
// of the raw kubeconfig.
func resolveClusterInfo(cfg clientcmd.ClientConfig, contextName string) (ClusterInfo, error) {
	raw, err := cfg.RawConfig()
	if err != nil {
		return ClusterInfo{}, err
	}

	effective := contextName
	if effective == "" {
		effective = raw.CurrentContext
	}

	info := ClusterInfo{ContextName: effective}
	if ctx, ok := raw.Contexts[effective]; ok {
		if cluster, ok := raw.Clusters[ctx.Cluster]; ok {
			info.Server = cluster.Server
		}
	}
	return info, nil
}
