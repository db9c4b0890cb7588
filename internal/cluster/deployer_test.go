package cluster

import (
	"context"
	"errors"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sfake "k8s.io/client-go/kubernetes/fake"
)

func TestDeployOneDeployment(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset()
	deployer := NewDeployer(New(clientset), "ns1")

	deployed, err := deployer.DeployOne(context.Background(), deploymentDoc("web"))
	if err != nil {
		t.Fatalf("DeployOne returned error: %v", err)
	}
	if deployed.Name != "web" || deployed.Type != "Deployment" {
		t.Fatalf("unexpected deployed resource: %+v", deployed)
	}

	if _, err := clientset.AppsV1().Deployments("ns1").Get(context.Background(), "web", metav1.GetOptions{}); err != nil {
		t.Fatalf("deployment not created in cluster: %v", err)
	}
}

func TestDeployOneService(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset()
	deployer := NewDeployer(New(clientset), "ns1")

	deployed, err := deployer.DeployOne(context.Background(), serviceDoc("web-svc"))
	if err != nil {
		t.Fatalf("DeployOne returned error: %v", err)
	}
	if deployed.Name != "web-svc" || deployed.Type != "Service" {
		t.Fatalf("unexpected deployed resource: %+v", deployed)
	}

	if _, err := clientset.CoreV1().Services("ns1").Get(context.Background(), "web-svc", metav1.GetOptions{}); err != nil {
		t.Fatalf("service not created in cluster: %v", err)
	}
}

func TestDeployOneUnsupportedKind(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset()
	deployer := NewDeployer(New(clientset), "ns1")

	_, err := deployer.DeployOne(context.Background(), widgetDoc("bad"))

	var deployErr *DeployError
	if !errors.As(err, &deployErr) {
		t.Fatalf("expected DeployError, got %v", err)
	}
	if deployErr.Message != "Resource type not supported: Widget" {
		t.Errorf("unexpected message: %q", deployErr.Message)
	}
	if len(clientset.Actions()) != 0 {
		t.Errorf("expected no cluster calls, got %d", len(clientset.Actions()))
	}
}

func TestDeployOneClusterFailure(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset()
	rejectCreatesNamed(clientset, "deployments", "bad")
	deployer := NewDeployer(New(clientset), "ns1")

	_, err := deployer.DeployOne(context.Background(), deploymentDoc("bad"))

	var deployErr *DeployError
	if !errors.As(err, &deployErr) {
		t.Fatalf("expected DeployError, got %v", err)
	}
	if deployErr.Message != "deployment failed" {
		t.Errorf("unexpected message: %q", deployErr.Message)
	}
	if len(deployErr.Causes) == 0 {
		t.Error("expected the cluster's cause list to be surfaced")
	}
}
