package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// CatalogConfig describes the remote data catalog holding raw sequencing
// deliveries, one top-level prefix per project.
type CatalogConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Catalog lists files stored in a remote object store.
type Catalog struct {
	api    *minio.Client
	bucket string
}

// NewCatalog connects to the remote catalog described by cfg.
func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog %s: %w", cfg.Endpoint, err)
	}
	return &Catalog{api: api, bucket: cfg.Bucket}, nil
}

// Project lists every object filed under the given project identifier and
// returns the keys as rooted paths. The listing must complete before the
// classification engine starts; nothing is streamed into it.
func (c *Catalog) Project(ctx context.Context, projectID string) ([]string, error) {
	prefix := strings.TrimSuffix(projectID, "/") + "/"

	var found []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for object := range c.api.ListObjects(ctx, c.bucket, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list project %s: %w", projectID, object.Err)
		}
		if strings.HasSuffix(object.Key, "/") {
			continue
		}
		found = append(found, "/"+object.Key)
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("project %s not found or empty in catalog", projectID)
	}
	return found, nil
}
