package models

import "time"

// Resource represents a cluster resource this service created and tracks.
// Rows are never physically removed; deletion only sets DeletedTimestamp.
type Resource struct {
	ID                int64
	Owner             int64
	Name              string
	Type              string
	CreatedTimestamp  time.Time
	ModifiedTimestamp *time.Time
	DeletedTimestamp  *time.Time
}

// Live reports whether the resource has not been soft-deleted
func (r *Resource) Live() bool {
	return r.DeletedTimestamp == nil
}

// ResourceResponse represents the response structure for a single tracked resource
type ResourceResponse struct {
	ID                int64      `json:"id"`
	Owner             int64      `json:"owner"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	CreatedTimestamp  time.Time  `json:"created_timestamp"`
	ModifiedTimestamp *time.Time `json:"modified_timestamp,omitempty"`
	DeletedTimestamp  *time.Time `json:"deleted_timestamp,omitempty"`
}

// ToResponse converts a domain Resource to a ResourceResponse DTO
func (r *Resource) ToResponse() ResourceResponse {
	return ResourceResponse{
		ID:                r.ID,
		Owner:             r.Owner,
		Name:              r.Name,
		Type:              r.Type,
		CreatedTimestamp:  r.CreatedTimestamp,
		ModifiedTimestamp: r.ModifiedTimestamp,
		DeletedTimestamp:  r.DeletedTimestamp,
	}
}

// PartitionedResources splits tracked resources into live and soft-deleted views
type PartitionedResources struct {
	Online  []ResourceResponse `json:"online"`
	Deleted []ResourceResponse `json:"deleted"`
}

// PartitionResources partitions ledger rows on their deleted timestamp
func PartitionResources(resources []*Resource) PartitionedResources {
	out := PartitionedResources{
		Online:  []ResourceResponse{},
		Deleted: []ResourceResponse{},
	}
	for _, resource := range resources {
		if resource.Live() {
			out.Online = append(out.Online, resource.ToResponse())
		} else {
			out.Deleted = append(out.Deleted, resource.ToResponse())
		}
	}
	return out
}

// DeployedResource identifies one successfully deployed manifest document
type DeployedResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DeployResponse represents the response structure for a manifest upload
type DeployResponse struct {
	Deployed []DeployedResource `json:"deployed"`
	Filename string             `json:"filename"`
}

// DeleteResponse mirrors the cluster's status for a delete call
type DeleteResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
