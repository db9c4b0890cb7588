package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	utilyaml "k8s.io/apimachinery/pkg/util/yaml"

	"gopkg.in/yaml.v2"
)

// ResourceKind is the closed set of manifest kinds the gateway deploys
type ResourceKind string

const (
	KindDeployment ResourceKind = "Deployment"
	KindService    ResourceKind = "Service"
)

// String returns the canonical kind spelling as known to the cluster API
func (k ResourceKind) String() string {
	return string(k)
}

// Lower returns the kind as used in the resource type column and URL paths
func (k ResourceKind) Lower() string {
	return strings.ToLower(string(k))
}

// ErrMissingKind is returned when a manifest document has no kind field
var ErrMissingKind = errors.New("Missing 'kind' field")

// UnsupportedKindError is returned when a manifest document names a kind
// outside the supported set
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("Resource type not supported: %s", e.Kind)
}

// ParseKind converts a raw kind string (case-insensitive) into a ResourceKind.
// An empty string yields ErrMissingKind; anything outside the supported set
// yields an UnsupportedKindError.
func ParseKind(raw string) (ResourceKind, error) {
	switch strings.ToLower(raw) {
	case "":
		return "", ErrMissingKind
	case "deployment":
		return KindDeployment, nil
	case "service":
		return KindService, nil
	default:
		return "", &UnsupportedKindError{Kind: raw}
	}
}

// ManifestDocument is one YAML document of an uploaded manifest. RawKind is
// the kind string exactly as uploaded; the body is kept verbatim and passed
// through to the cluster API unmodified.
type ManifestDocument struct {
	RawKind string
	Raw     []byte
}

// Kind resolves the document's raw kind against the supported set
func (d ManifestDocument) Kind() (ResourceKind, error) {
	return ParseKind(d.RawKind)
}

// ParseManifest splits a manifest byte stream on the standard YAML document
// separator and peeks each document's kind. Empty documents (for example a
// trailing separator) are skipped. Malformed YAML fails the whole upload.
func ParseManifest(r io.Reader) ([]ManifestDocument, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(r))

	var docs []ManifestDocument
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}

		var head struct {
			Kind string `yaml:"kind"`
		}
		if err := yaml.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("failed to parse manifest document: %w", err)
		}

		// A document holding only comments or whitespace decodes to nothing.
		var body map[interface{}]interface{}
		if err := yaml.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("failed to parse manifest document: %w", err)
		}
		if len(body) == 0 {
			continue
		}

		docs = append(docs, ManifestDocument{RawKind: head.Kind, Raw: raw})
	}

	return docs, nil
}
