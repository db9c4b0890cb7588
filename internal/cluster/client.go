package cluster

import (
	"context"
	"fmt"
	"os"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
)

// Client wraps the Kubernetes control-plane API for the two supported
// resource kinds. All failure mapping is left to callers; cluster errors
// are surfaced as returned by client-go.
type Client struct {
	clientset kubernetes.Interface
}

// New wraps an existing clientset, typically a fake in tests
func New(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// NewForConfig builds a cluster client. It prefers in-cluster configuration
// and falls back to KUBECONFIG when running outside the cluster.
func NewForConfig() (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := strings.TrimSpace(os.Getenv("KUBECONFIG"))
		if kubeconfig == "" {
			return nil, fmt.Errorf("create in-cluster config: %w", err)
		}
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("create kubeconfig client: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

func createOptions(dryRun bool) metav1.CreateOptions {
	opts := metav1.CreateOptions{}
	if dryRun {
		opts.DryRun = []string{metav1.DryRunAll}
	}
	return opts
}

// CreateDeployment submits a Deployment to the cluster. With dryRun set the
// control plane validates the request without persisting it.
func (c *Client) CreateDeployment(ctx context.Context, namespace string, deployment *appsv1.Deployment, dryRun bool) (*appsv1.Deployment, error) {
	return c.clientset.AppsV1().Deployments(namespace).Create(ctx, deployment, createOptions(dryRun))
}

// CreateService submits a Service to the cluster, optionally in dry-run mode
func (c *Client) CreateService(ctx context.Context, namespace string, service *corev1.Service, dryRun bool) (*corev1.Service, error) {
	return c.clientset.CoreV1().Services(namespace).Create(ctx, service, createOptions(dryRun))
}

// ListDeploymentNames returns the names of all Deployments in the namespace
func (c *Client) ListDeploymentNames(ctx context.Context, namespace string) ([]string, error) {
	list, err := c.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, deployment := range list.Items {
		names = append(names, deployment.Name)
	}
	return names, nil
}

// ListServiceNames returns the names of all Services in the namespace
func (c *Client) ListServiceNames(ctx context.Context, namespace string) ([]string, error) {
	list, err := c.clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, service := range list.Items {
		names = append(names, service.Name)
	}
	return names, nil
}

// DeleteDeployment removes a Deployment, mapping the control plane's answer
// into the {status, reason} shape callers report back
func (c *Client) DeleteDeployment(ctx context.Context, namespace, name string) models.DeleteResponse {
	err := c.clientset.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return deleteStatus(err)
}

// DeleteService removes a Service
func (c *Client) DeleteService(ctx context.Context, namespace, name string) models.DeleteResponse {
	err := c.clientset.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return deleteStatus(err)
}

func deleteStatus(err error) models.DeleteResponse {
	if err == nil {
		return models.DeleteResponse{Status: "Success"}
	}

	reason := string(apierrors.ReasonForError(err))
	if reason == "" {
		reason = err.Error()
	}
	return models.DeleteResponse{Status: "Failure", Reason: reason}
}

// EnsureNamespace creates the namespace if absent. A concurrent create racing
// this call surfaces AlreadyExists, which is treated as success.
func (c *Client) EnsureNamespace(ctx context.Context, name string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}

	_, err := c.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("create namespace %s: %w", name, err)
	}
	if err == nil {
		logger.WithField("namespace", name).Info("Created target namespace")
	}
	return nil
}
