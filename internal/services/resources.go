package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imyashkale/kubegate/internal/cluster"
	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/repository"
)

var (
	// ErrUnknownUser is returned when the caller has no row in the identity store
	ErrUnknownUser = errors.New("unknown user in database")
	// ErrUnknownResource is returned when the caller owns no matching ledger row
	ErrUnknownResource = errors.New("unknown resource in database")
	// ErrTypeMismatch is returned when the requested type does not match the ledger row
	ErrTypeMismatch = errors.New("resource type mismatch")
)

// ClusterView lists live resource names as reported by the cluster API
type ClusterView struct {
	Deployments []string `json:"deployments"`
	Services    []string `json:"services"`
}

// ResourceService orchestrates the resource lifecycle: validate, deploy and
// record on create; authorize, delete and soft-delete on removal. All
// cluster and ledger collaborators are injected so tests can substitute
// doubles.
type ResourceService struct {
	validator *cluster.Validator
	deployer  *cluster.Deployer
	client    *cluster.Client
	resources repository.ResourceRepository
	users     repository.UserRepository
	namespace string
	protected map[string]struct{}
}

// NewResourceService creates a new resource lifecycle service. The protected
// names deny deletion regardless of caller, shielding the gateway's own
// deployment.
func NewResourceService(
	validator *cluster.Validator,
	deployer *cluster.Deployer,
	client *cluster.Client,
	resources repository.ResourceRepository,
	users repository.UserRepository,
	namespace string,
	protectedNames []string,
) *ResourceService {
	protected := make(map[string]struct{}, len(protectedNames))
	for _, name := range protectedNames {
		protected[name] = struct{}{}
	}

	return &ResourceService{
		validator: validator,
		deployer:  deployer,
		client:    client,
		resources: resources,
		users:     users,
		namespace: namespace,
		protected: protected,
	}
}

// Create validates every manifest document against the cluster before any
// real write, then deploys documents strictly in manifest order, recording
// each success in the ledger before moving on. A mid-manifest failure aborts
// the remainder; earlier documents stay deployed and recorded. The returned
// slice always holds exactly the successfully deployed prefix.
func (s *ResourceService) Create(ctx context.Context, username string, docs []models.ManifestDocument) ([]models.DeployedResource, error) {
	deployed := []models.DeployedResource{}

	if err := s.validator.Validate(ctx, docs); err != nil {
		return deployed, err
	}

	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return deployed, fmt.Errorf("%w (user: %s)", ErrUnknownUser, username)
		}
		return deployed, err
	}

	for _, doc := range docs {
		resource, err := s.deployer.DeployOne(ctx, doc)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"username": username,
				"deployed": len(deployed),
				"error":    err.Error(),
			}).Warn("Manifest deployment aborted mid-stream")
			return deployed, err
		}

		record := &models.Resource{
			Owner:            owner.ID,
			Name:             resource.Name,
			Type:             resource.Type,
			CreatedTimestamp: time.Now(),
		}
		if err := s.resources.Add(ctx, record); err != nil {
			// The resource exists in the cluster but has no ledger row.
			logger.WithFields(map[string]interface{}{
				"name":  resource.Name,
				"type":  resource.Type,
				"owner": owner.ID,
				"error": err.Error(),
			}).Error("Deployed resource could not be recorded; manual reconciliation required")
			return deployed, fmt.Errorf("failed to record deployed resource %s: %w", resource.Name, err)
		}

		deployed = append(deployed, resource)
	}

	return deployed, nil
}

// Delete removes a cluster resource owned by the caller and soft-deletes its
// ledger row. The ledger is only touched after the cluster confirms the
// deletion, so rows stay consistent with cluster truth.
func (s *ResourceService) Delete(ctx context.Context, username, resourceType, resourceName string) (models.DeleteResponse, error) {
	if _, guarded := s.protected[resourceName]; guarded {
		logger.WithFields(map[string]interface{}{
			"username": username,
			"name":     resourceName,
		}).Warn("Refused delete of protected resource")
		return models.DeleteResponse{Status: "Failure", Reason: "Not Authorized"}, nil
	}

	kind, err := models.ParseKind(resourceType)
	if err != nil {
		return models.DeleteResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.DeleteResponse{}, fmt.Errorf("%w (user: %s)", ErrUnknownUser, username)
		}
		return models.DeleteResponse{}, err
	}

	record, err := s.resources.GetByName(ctx, resourceName, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.DeleteResponse{}, fmt.Errorf("%w: %s", ErrUnknownResource, resourceName)
		}
		return models.DeleteResponse{}, err
	}

	if !strings.EqualFold(record.Type, resourceType) {
		return models.DeleteResponse{}, fmt.Errorf(
			"%w: expected resource of type %s but got resource of type %s",
			ErrTypeMismatch, resourceType, strings.ToLower(record.Type),
		)
	}

	var resp models.DeleteResponse
	switch kind {
	case models.KindDeployment:
		resp = s.client.DeleteDeployment(ctx, s.namespace, resourceName)
	case models.KindService:
		resp = s.client.DeleteService(ctx, s.namespace, resourceName)
	}

	if resp.Status == "Failure" {
		return resp, nil
	}

	if err := s.resources.SoftDelete(ctx, record.ID, time.Now()); err != nil {
		// Cluster-side deletion succeeded but the ledger row kept its
		// live state; there is no automatic repair for this divergence.
		logger.WithFields(map[string]interface{}{
			"resource_id": record.ID,
			"name":        resourceName,
			"error":       err.Error(),
		}).Error("Cluster delete succeeded but ledger soft-delete failed; manual reconciliation required")
	}

	return resp, nil
}

// Touch stamps the modified timestamp of a resource owned by the caller
func (s *ResourceService) Touch(ctx context.Context, username, resourceName string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w (user: %s)", ErrUnknownUser, username)
		}
		return err
	}

	if err := s.resources.SetUpdateTime(ctx, resourceName, user.ID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownResource, resourceName)
		}
		return err
	}
	return nil
}

// ListUserResources returns the caller's ledger rows partitioned into live
// and soft-deleted views
func (s *ResourceService) ListUserResources(ctx context.Context, username string) (models.PartitionedResources, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PartitionedResources{}, fmt.Errorf("%w (user: %s)", ErrUnknownUser, username)
		}
		return models.PartitionedResources{}, err
	}

	resources, err := s.resources.GetByOwner(ctx, user.ID)
	if err != nil {
		return models.PartitionedResources{}, err
	}
	return models.PartitionResources(resources), nil
}

// GetUserResource returns one ledger row by id, scoped to the caller
func (s *ResourceService) GetUserResource(ctx context.Context, username string, id int64) (*models.Resource, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w (user: %s)", ErrUnknownUser, username)
		}
		return nil, err
	}

	resource, err := s.resources.GetByID(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownResource, id)
		}
		return nil, err
	}
	return resource, nil
}

// ListLedger returns every ledger row partitioned into live and soft-deleted
// views. Admin only; the authorization gate sits in the router.
func (s *ResourceService) ListLedger(ctx context.Context) (models.PartitionedResources, error) {
	resources, err := s.resources.GetAll(ctx)
	if err != nil {
		return models.PartitionedResources{}, err
	}
	return models.PartitionResources(resources), nil
}

// ListCluster returns the live resource names in the target namespace as the
// cluster reports them
func (s *ResourceService) ListCluster(ctx context.Context) (ClusterView, error) {
	deployments, err := s.client.ListDeploymentNames(ctx, s.namespace)
	if err != nil {
		return ClusterView{}, err
	}

	services, err := s.client.ListServiceNames(ctx, s.namespace)
	if err != nil {
		return ClusterView{}, err
	}

	return ClusterView{Deployments: deployments, Services: services}, nil
}

// ListClusterDeployments returns live Deployment names in the target namespace
func (s *ResourceService) ListClusterDeployments(ctx context.Context) ([]string, error) {
	return s.client.ListDeploymentNames(ctx, s.namespace)
}

// ListClusterServices returns live Service names in the target namespace
func (s *ResourceService) ListClusterServices(ctx context.Context) ([]string, error) {
	return s.client.ListServiceNames(ctx, s.namespace)
}
