package cluster

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

func decodeDeployment(raw []byte) (*appsv1.Deployment, error) {
	var deployment appsv1.Deployment
	if err := yaml.Unmarshal(raw, &deployment); err != nil {
		return nil, fmt.Errorf("decode deployment document: %w", err)
	}
	return &deployment, nil
}

func decodeService(raw []byte) (*corev1.Service, error) {
	var service corev1.Service
	if err := yaml.Unmarshal(raw, &service); err != nil {
		return nil, fmt.Errorf("decode service document: %w", err)
	}
	return &service, nil
}
