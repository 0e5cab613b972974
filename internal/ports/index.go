package ports

import (
	"context"

	"pypack/internal/types"
)

type PackageIndexPort interface {
	ProjectMetadata(ctx context.Context, name string) (types.ProjectMetadata, error)
	LatestVersion(ctx context.Context, name string) (string, error)
	Releases(ctx context.Context, name string) (map[string][]string, error)
	ReleasesWithDigests(ctx context.Context, name string) (map[string][]types.FileURL, error)
	SdistURL(ctx context.Context, name string, version string, strict bool) (string, error)
	DownloadFile(ctx context.Context, url string, destDir string) (string, error)
}
