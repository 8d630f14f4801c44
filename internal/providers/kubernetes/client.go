package kubernetes

import k8sclient "k8s.io/client-go/kubernetes"

// KubeClientProvider hands out clientsets for kubeconfig contexts. The
// engine uses it to observe kubelet versions on clusters whose node groups
// the EKS API cannot see; the doctor command uses it for reachability
// checks. Tests inject a provider backed by a fake clientset.
type KubeClientProvider interface {
	// ClientsetForContext returns a clientset and the resolved ClusterInfo
	// for the named kubeconfig context, or for the current context when
	// contextName is empty.
	ClientsetForContext(contextName string) (k8sclient.Interface, ClusterInfo, error)
}

// DefaultKubeClientProvider resolves contexts against the kubeconfig
// selected by $KUBECONFIG, falling back to ~/.kube/config.
type DefaultKubeClientProvider struct{}

func NewDefaultKubeClientProvider() *DefaultKubeClientProvider {
	return &DefaultKubeClientProvider{}
}

// ClientsetForContext implements KubeClientProvider.
func (p *DefaultKubeClientProvider) ClientsetForContext(contextName string) (k8sclient.Interface, ClusterInfo, error) {
	return LoadClientset(kubeconfigPath(), contextName)
}
