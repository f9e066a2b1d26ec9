package services

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/catalog"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type PackagingService struct {
	pkgRepo      ports.ModelPackageRepository
	endpointRepo ports.EndpointRepository
	store        ports.ArtifactStore
}

func NewPackagingService(
	pkgRepo ports.ModelPackageRepository,
	endpointRepo ports.EndpointRepository,
	store ports.ArtifactStore,
) *PackagingService {
	return &PackagingService{
		pkgRepo:      pkgRepo,
		endpointRepo: endpointRepo,
		store:        store,
	}
}

type BuildPackageRequest struct {
	ProjectID    uuid.UUID
	Name         string
	BaseModelID  string
	Overrides    map[string]string // serving.properties key overrides
	Requirements []string          // extra pip requirements bundled alongside
	Labels       map[string]string
}

// Build assembles the serving configuration for a base model, bundles it into
// a model.tar.gz, uploads the archive to object storage, and registers the
// resulting package.
func (s *PackagingService) Build(ctx context.Context, req BuildPackageRequest) (*domain.ModelPackage, error) {
	spec, err := catalog.Get(req.BaseModelID)
	if err != nil {
		return nil, err
	}

	props := spec.DefaultServingProperties()
	for key, value := range req.Overrides {
		if err := props.ApplyOption(key, value); err != nil {
			return nil, err
		}
	}

	pkg, err := domain.NewModelPackage(req.ProjectID, req.Name, spec.ID, props)
	if err != nil {
		return nil, err
	}
	if req.Labels != nil {
		pkg.Labels = req.Labels
	}

	archive, err := buildArchive(props.Render(), req.Requirements)
	if err != nil {
		return nil, fmt.Errorf("build package archive: %w", err)
	}

	sum := sha256.Sum256(archive)
	key := packageObjectKey(req.ProjectID, req.Name)

	uri, err := s.store.Upload(ctx, key, bytes.NewReader(archive), int64(len(archive)), "application/gzip")
	if err != nil {
		return nil, fmt.Errorf("upload package archive: %w", err)
	}

	pkg.MarkUploaded(uri, hex.EncodeToString(sum[:]), int64(len(archive)))

	if err := s.pkgRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	return pkg, nil
}

func (s *PackagingService) Get(ctx context.Context, projectID, id uuid.UUID) (*domain.ModelPackage, error) {
	return s.pkgRepo.GetByID(ctx, projectID, id)
}

// GetByName resolves a package by its project-unique name.
func (s *PackagingService) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.ModelPackage, error) {
	return s.pkgRepo.GetByName(ctx, projectID, name)
}

// OpenArchive streams the stored archive of an uploaded package. The caller
// closes the reader.
func (s *PackagingService) OpenArchive(ctx context.Context, projectID, id uuid.UUID) (*domain.ModelPackage, io.ReadCloser, error) {
	pkg, err := s.pkgRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, nil, err
	}
	if !pkg.IsUploaded() {
		return nil, nil, domain.ErrPackageNotUploaded
	}

	rc, err := s.store.Download(ctx, packageObjectKey(projectID, pkg.Name))
	if err != nil {
		return nil, nil, fmt.Errorf("download package archive: %w", err)
	}
	return pkg, rc, nil
}

func (s *PackagingService) List(ctx context.Context, filter ports.PackageListFilter) ([]*domain.ModelPackage, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.pkgRepo.List(ctx, filter)
}

// Delete removes a package and its stored archive. Packages referenced by a
// live endpoint are refused.
func (s *PackagingService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	pkg, err := s.pkgRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return err
	}

	live, err := s.endpointRepo.CountLiveByPackage(ctx, projectID, id)
	if err != nil {
		return fmt.Errorf("count endpoints for package: %w", err)
	}
	if live > 0 {
		return domain.ErrPackageInUse
	}

	if pkg.IsUploaded() {
		// Archive might already be gone; the row is what matters.
		_ = s.store.Remove(ctx, packageObjectKey(projectID, pkg.Name))
	}

	return s.pkgRepo.Delete(ctx, projectID, id)
}

// DownloadURL returns a presigned URL for the package archive.
func (s *PackagingService) DownloadURL(ctx context.Context, projectID, id uuid.UUID, expiry time.Duration) (string, error) {
	pkg, err := s.pkgRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return "", err
	}
	if !pkg.IsUploaded() {
		return "", domain.ErrPackageNotUploaded
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return s.store.PresignedGetURL(ctx, packageObjectKey(projectID, pkg.Name), expiry)
}

func packageObjectKey(projectID uuid.UUID, name string) string {
	return fmt.Sprintf("packages/%s/%s/model.tar.gz", projectID, name)
}

// buildArchive writes serving.properties (and an optional requirements.txt)
// into an in-memory tar.gz, the layout the serving container expects to find
// at its storage URI.
func buildArchive(properties string, requirements []string) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	files := []struct {
		name    string
		content string
	}{
		{"serving.properties", properties},
	}
	if len(requirements) > 0 {
		files = append(files, struct {
			name    string
			content string
		}{"requirements.txt", strings.Join(requirements, "\n") + "\n"})
	}

	now := time.Now()
	for _, f := range files {
		hdr := &tar.Header{
			Name:    f.name,
			Mode:    0o644,
			Size:    int64(len(f.content)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if _, err := tw.Write([]byte(f.content)); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
