package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imyashkale/kubegate/internal/cluster"
	"github.com/imyashkale/kubegate/internal/middleware"
	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/services"
)

// ResourceHandler handles manifest uploads and resource lifecycle requests
type ResourceHandler struct {
	svc *services.ResourceService
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(svc *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		svc: svc,
	}
}

// callerUsername reads the authenticated username set by the auth middleware
func callerUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(middleware.ContextUsername)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "Username not found in context",
		})
		return "", false
	}

	usernameStr, ok := username.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Invalid username format",
		})
		return "", false
	}
	return usernameStr, true
}

// rejectionBody shapes a lifecycle failure for the response. Validator and
// deployer failures keep their structured cause list; everything else
// degrades to a plain message.
func rejectionBody(err error) interface{} {
	var validationErr *cluster.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	var deployErr *cluster.DeployError
	if errors.As(err, &deployErr) {
		return deployErr
	}
	return gin.H{"message": err.Error()}
}

// Create handles a multi-document manifest upload. The whole manifest is
// dry-run validated before any real write; deployment failures mid-manifest
// are reported while earlier documents stay deployed and recorded.
func (h *ResourceHandler) Create(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("yaml_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "yaml_file upload is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Failed to open uploaded file",
		})
		return
	}
	defer file.Close()

	docs, err := models.ParseManifest(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	deployed, err := h.svc.Create(c.Request.Context(), username, docs)
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionBody(err))
		return
	}

	c.JSON(http.StatusOK, models.DeployResponse{
		Deployed: deployed,
		Filename: fileHeader.Filename,
	})
}

// Delete handles removal of one resource owned by the caller
func (h *ResourceHandler) Delete(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	resourceType := c.Param("resource_type")
	resourceName := c.Param("resource_name")

	resp, err := h.svc.Delete(c.Request.Context(), username, resourceType, resourceName)
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionBody(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Touch stamps the modified timestamp of one resource owned by the caller
func (h *ResourceHandler) Touch(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	resourceName := c.Param("resource_name")

	if err := h.svc.Touch(c.Request.Context(), username, resourceName); err != nil {
		c.JSON(http.StatusBadRequest, rejectionBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "Success"})
}

// ListMine returns the caller's ledger rows, partitioned into online and
// deleted views
func (h *ResourceHandler) ListMine(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	resources, err := h.svc.ListUserResources(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// GetMine returns one of the caller's ledger rows by id
func (h *ResourceHandler) GetMine(c *gin.Context) {
	username, ok := callerUsername(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("resource_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "resource_id must be an integer",
		})
		return
	}

	resource, err := h.svc.GetUserResource(c.Request.Context(), username, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, rejectionBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource": resource.ToResponse()})
}

// ListCluster returns live deployment and service names in the target
// namespace. Admin only.
func (h *ResourceHandler) ListCluster(c *gin.Context) {
	view, err := h.svc.ListCluster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to list cluster resources",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListClusterDeployments returns live Deployment names. Admin only.
func (h *ResourceHandler) ListClusterDeployments(c *gin.Context) {
	names, err := h.svc.ListClusterDeployments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to list deployments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deployments": names})
}

// ListClusterServices returns live Service names. Admin only.
func (h *ResourceHandler) ListClusterServices(c *gin.Context) {
	names, err := h.svc.ListClusterServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to list services",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": names})
}

// ListLedger returns every ledger row, partitioned. Admin only.
func (h *ResourceHandler) ListLedger(c *gin.Context) {
	resources, err := h.svc.ListLedger(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to list tracked resources",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"all_resources": resources})
}
