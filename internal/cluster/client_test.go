package cluster

import (
	"context"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sfake "k8s.io/client-go/kubernetes/fake"
)

func namespacedDeployment(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
}

func namespacedService(namespace, name string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
}

func TestEnsureNamespaceIdempotent(t *testing.T) {
	client := New(k8sfake.NewSimpleClientset())
	ctx := context.Background()

	if err := client.EnsureNamespace(ctx, "ns1"); err != nil {
		t.Fatalf("first EnsureNamespace failed: %v", err)
	}
	// Second call hits AlreadyExists, which must be treated as success.
	if err := client.EnsureNamespace(ctx, "ns1"); err != nil {
		t.Fatalf("second EnsureNamespace failed: %v", err)
	}
}

func TestListNames(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset(
		namespacedDeployment("ns1", "web"),
		namespacedDeployment("ns1", "api"),
		namespacedDeployment("other", "elsewhere"),
		namespacedService("ns1", "web-svc"),
	)
	client := New(clientset)
	ctx := context.Background()

	deployments, err := client.ListDeploymentNames(ctx, "ns1")
	if err != nil {
		t.Fatalf("ListDeploymentNames failed: %v", err)
	}
	if len(deployments) != 2 {
		t.Fatalf("expected 2 deployments, got %v", deployments)
	}

	services, err := client.ListServiceNames(ctx, "ns1")
	if err != nil {
		t.Fatalf("ListServiceNames failed: %v", err)
	}
	if len(services) != 1 || services[0] != "web-svc" {
		t.Fatalf("expected [web-svc], got %v", services)
	}
}

func TestDeleteDeploymentSuccess(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset(namespacedDeployment("ns1", "web"))
	client := New(clientset)

	resp := client.DeleteDeployment(context.Background(), "ns1", "web")
	if resp.Status != "Success" {
		t.Fatalf("expected Success, got %+v", resp)
	}

	names, err := client.ListDeploymentNames(context.Background(), "ns1")
	if err != nil {
		t.Fatalf("ListDeploymentNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no deployments after delete, got %v", names)
	}
}

func TestDeleteDeploymentNotFound(t *testing.T) {
	client := New(k8sfake.NewSimpleClientset())

	resp := client.DeleteDeployment(context.Background(), "ns1", "missing")
	if resp.Status != "Failure" {
		t.Fatalf("expected Failure, got %+v", resp)
	}
	if resp.Reason != "NotFound" {
		t.Errorf("expected reason NotFound, got %q", resp.Reason)
	}
}

func TestDeleteServiceNotFound(t *testing.T) {
	client := New(k8sfake.NewSimpleClientset())

	resp := client.DeleteService(context.Background(), "ns1", "missing")
	if resp.Status != "Failure" {
		t.Fatalf("expected Failure, got %+v", resp)
	}
}
