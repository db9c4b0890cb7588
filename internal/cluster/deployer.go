package cluster

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
)

// DeployError carries the reason a real create call was refused
type DeployError struct {
	Message string               `json:"message"`
	Causes  []metav1.StatusCause `json:"causes,omitempty"`
}

func (e *DeployError) Error() string {
	return e.Message
}

// Deployer performs real creation calls for validated manifest documents
type Deployer struct {
	client    *Client
	namespace string
}

// NewDeployer creates a deployer targeting the configured namespace
func NewDeployer(client *Client, namespace string) *Deployer {
	return &Deployer{
		client:    client,
		namespace: namespace,
	}
}

// DeployOne creates the document's resource in the cluster and returns its
// identity as reported by the control plane
func (d *Deployer) DeployOne(ctx context.Context, doc models.ManifestDocument) (models.DeployedResource, error) {
	kind, err := doc.Kind()
	if err != nil {
		return models.DeployedResource{}, &DeployError{Message: err.Error()}
	}

	var name string
	switch kind {
	case models.KindDeployment:
		deployment, err := decodeDeployment(doc.Raw)
		if err != nil {
			return models.DeployedResource{}, &DeployError{Message: err.Error()}
		}
		resp, err := d.client.CreateDeployment(ctx, d.namespace, deployment, false)
		if err != nil {
			return models.DeployedResource{}, failure(err)
		}
		name = resp.Name
	case models.KindService:
		service, err := decodeService(doc.Raw)
		if err != nil {
			return models.DeployedResource{}, &DeployError{Message: err.Error()}
		}
		resp, err := d.client.CreateService(ctx, d.namespace, service, false)
		if err != nil {
			return models.DeployedResource{}, failure(err)
		}
		name = resp.Name
	}

	logger.WithFields(map[string]interface{}{
		"name":      name,
		"kind":      kind.String(),
		"namespace": d.namespace,
	}).Info("Deployed resource to cluster")

	return models.DeployedResource{Name: name, Type: kind.String()}, nil
}

func failure(err error) *DeployError {
	return &DeployError{
		Message: "deployment failed",
		Causes:  clusterCauses(err),
	}
}
