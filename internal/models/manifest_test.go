package models

import (
	"errors"
	"strings"
	"testing"
)

const multiDocManifest = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
---
apiVersion: v1
kind: Service
metadata:
  name: web-svc
`

func TestParseManifestSplitsDocuments(t *testing.T) {
	docs, err := ParseManifest(strings.NewReader(multiDocManifest))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].RawKind != "Deployment" {
		t.Errorf("expected first document kind Deployment, got %q", docs[0].RawKind)
	}
	if docs[1].RawKind != "Service" {
		t.Errorf("expected second document kind Service, got %q", docs[1].RawKind)
	}
}

func TestParseManifestEmptyInput(t *testing.T) {
	docs, err := ParseManifest(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected 0 documents, got %d", len(docs))
	}
}

func TestParseManifestSkipsEmptyDocuments(t *testing.T) {
	manifest := multiDocManifest + "---\n# trailing comment only\n"

	docs, err := ParseManifest(strings.NewReader(manifest))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected empty trailing document to be skipped, got %d documents", len(docs))
	}
}

func TestParseManifestMalformedYAML(t *testing.T) {
	if _, err := ParseManifest(strings.NewReader("kind: [unclosed\n")); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestParseManifestKeepsDocumentWithoutKind(t *testing.T) {
	docs, err := ParseManifest(strings.NewReader("metadata:\n  name: mystery\n"))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].RawKind != "" {
		t.Errorf("expected empty kind, got %q", docs[0].RawKind)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ResourceKind
		wantErr error
	}{
		{name: "canonical deployment", raw: "Deployment", want: KindDeployment},
		{name: "lowercase deployment", raw: "deployment", want: KindDeployment},
		{name: "canonical service", raw: "Service", want: KindService},
		{name: "uppercase service", raw: "SERVICE", want: KindService},
		{name: "missing kind", raw: "", wantErr: ErrMissingKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseKindUnsupported(t *testing.T) {
	_, err := ParseKind("Widget")

	var unsupported *UnsupportedKindError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedKindError, got %v", err)
	}
	if err.Error() != "Resource type not supported: Widget" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}
