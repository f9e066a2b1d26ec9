package client

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// BuildPackage assembles a model package from a base model and uploads
// its archive to object storage.
func (c *Client) BuildPackage(req *dto.BuildPackageRequest) (*dto.ModelPackageResponse, error) {
	var resp dto.ModelPackageResponse
	if err := c.doRequest(http.MethodPost, "/packages", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPackages returns model packages for the project, optionally
// filtered by base model.
func (c *Client) ListPackages(baseModelID string, limit, offset int) (*dto.ListModelPackagesResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if baseModelID != "" {
		q.Set("base_model_id", baseModelID)
	}

	var resp dto.ListModelPackagesResponse
	if err := c.doRequest(http.MethodGet, "/packages?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPackage returns a single model package by ID.
func (c *Client) GetPackage(id string) (*dto.ModelPackageResponse, error) {
	var resp dto.ModelPackageResponse
	if err := c.doRequest(http.MethodGet, "/packages/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePackage removes a model package and its stored archive.
func (c *Client) DeletePackage(id string) error {
	return c.doRequest(http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil)
}

// PackageDownloadURL returns a presigned URL for downloading the
// package archive.
func (c *Client) PackageDownloadURL(id string, expirySeconds int) (*dto.PackageDownloadURLResponse, error) {
	path := "/packages/" + url.PathEscape(id) + "/download_url"
	if expirySeconds > 0 {
		path += "?expiry_seconds=" + strconv.Itoa(expirySeconds)
	}

	var resp dto.PackageDownloadURLResponse
	if err := c.doRequest(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
