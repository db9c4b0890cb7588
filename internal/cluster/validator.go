package cluster

import (
	"context"
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
)

// ValidationError carries the reason a manifest was rejected. When the
// cluster's admission machinery refused a dry-run, Causes holds the control
// plane's structured cause list verbatim.
type ValidationError struct {
	Message string               `json:"message"`
	Causes  []metav1.StatusCause `json:"causes,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator gates manifests by dry-running every document against the
// cluster API before any real write. Apart from idempotent namespace
// creation it has no observable effect on cluster state.
type Validator struct {
	client    *Client
	namespace string
}

// NewValidator creates a validator targeting the configured namespace
func NewValidator(client *Client, namespace string) *Validator {
	return &Validator{
		client:    client,
		namespace: namespace,
	}
}

// Validate checks every document in manifest order and returns on the first
// failure. The manifest as a whole is valid only if every document passes.
func (v *Validator) Validate(ctx context.Context, docs []models.ManifestDocument) error {
	if err := v.client.EnsureNamespace(ctx, v.namespace); err != nil {
		return err
	}

	for _, doc := range docs {
		if err := v.validateOne(ctx, doc); err != nil {
			logger.WithFields(map[string]interface{}{
				"kind":      doc.RawKind,
				"namespace": v.namespace,
				"reason":    err.Error(),
			}).Warn("Manifest document failed validation")
			return err
		}
	}

	return nil
}

func (v *Validator) validateOne(ctx context.Context, doc models.ManifestDocument) error {
	kind, err := doc.Kind()
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	switch kind {
	case models.KindDeployment:
		deployment, err := decodeDeployment(doc.Raw)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		if _, err := v.client.CreateDeployment(ctx, v.namespace, deployment, true); err != nil {
			return rejection(err)
		}
	case models.KindService:
		service, err := decodeService(doc.Raw)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		if _, err := v.client.CreateService(ctx, v.namespace, service, true); err != nil {
			return rejection(err)
		}
	}

	return nil
}

func rejection(err error) *ValidationError {
	return &ValidationError{
		Message: "manifest validation failed",
		Causes:  clusterCauses(err),
	}
}

// clusterCauses extracts the structured cause list from a cluster API error.
// Errors without details degrade to a single cause holding the error text.
func clusterCauses(err error) []metav1.StatusCause {
	var statusErr *apierrors.StatusError
	if errors.As(err, &statusErr) {
		if details := statusErr.ErrStatus.Details; details != nil && len(details.Causes) > 0 {
			return details.Causes
		}
	}
	return []metav1.StatusCause{{Message: err.Error()}}
}
