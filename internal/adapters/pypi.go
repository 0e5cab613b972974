package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pypack/internal/ports"
	"pypack/internal/shared"
	"pypack/internal/types"
)

const defaultPyPIBaseURL = "https://pypi.org/pypi"
const defaultPyPITimeout = 10 * time.Second

// PyPIAdapter implements PackageIndexPort against the PyPI JSON API.
type PyPIAdapter struct {
	BaseURL string
	Client  *http.Client
}

var _ ports.PackageIndexPort = (*PyPIAdapter)(nil)

func NewPyPIAdapter(baseURL string, timeout time.Duration) *PyPIAdapter {
	if baseURL == "" {
		baseURL = defaultPyPIBaseURL
	}
	if timeout <= 0 {
		timeout = defaultPyPITimeout
	}
	return &PyPIAdapter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// ProjectMetadata fetches and decodes /<name>/json for a project. The
// name is normalized before the request.
func (a *PyPIAdapter) ProjectMetadata(ctx context.Context, name string) (types.ProjectMetadata, error) {
	normalized := shared.Normalize(name)
	endpoint := fmt.Sprintf("%s/%s/json", a.BaseURL, normalized)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build pypi request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pypi request failed: " + endpoint).
			WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no such project on pypi: " + normalized)
	case resp.StatusCode != http.StatusOK:
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pypi request failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}

	var metadata types.ProjectMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode pypi response: " + endpoint).
			WithCause(err)
	}
	return metadata, nil
}

// LatestVersion returns the version PyPI reports as current for a
// project.
func (a *PyPIAdapter) LatestVersion(ctx context.Context, name string) (string, error) {
	metadata, err := a.ProjectMetadata(ctx, name)
	if err != nil {
		return "", err
	}
	return metadata.Info.Version, nil
}

// Releases maps each released version to the download URLs of its
// files, versions and URLs both sorted.
func (a *PyPIAdapter) Releases(ctx context.Context, name string) (map[string][]string, error) {
	metadata, err := a.ProjectMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	releases := make(map[string][]string, len(metadata.Releases))
	for version, files := range metadata.Releases {
		urls := make([]string, 0, len(files))
		for _, file := range files {
			urls = append(urls, file.URL)
		}
		sort.Strings(urls)
		releases[version] = urls
	}
	return releases, nil
}

// ReleasesWithDigests maps each released version to its files' URLs
// paired with their sha256 digests.
func (a *PyPIAdapter) ReleasesWithDigests(ctx context.Context, name string) (map[string][]types.FileURL, error) {
	metadata, err := a.ProjectMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	releases := make(map[string][]types.FileURL, len(metadata.Releases))
	for version, files := range metadata.Releases {
		urls := make([]types.FileURL, 0, len(files))
		for _, file := range files {
			urls = append(urls, types.FileURL{URL: file.URL, Digest: file.Digests["sha256"]})
		}
		sort.Slice(urls, func(i, j int) bool { return urls[i].URL < urls[j].URL })
		releases[version] = urls
	}
	return releases, nil
}

// SdistURL returns the download URL of the source distribution for one
// release. A .tar.gz sdist is preferred; unless strict is set, a .zip
// sdist is accepted as fallback.
func (a *PyPIAdapter) SdistURL(ctx context.Context, name string, version string, strict bool) (string, error) {
	metadata, err := a.ProjectMetadata(ctx, name)
	if err != nil {
		return "", err
	}
	files, ok := metadata.Releases[version]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no release %s for project %s", version, shared.Normalize(name)))
	}
	var zipFallback string
	for _, file := range files {
		if strings.HasSuffix(file.URL, ".tar.gz") {
			return file.URL, nil
		}
		if zipFallback == "" && strings.HasSuffix(file.URL, ".zip") {
			zipFallback = file.URL
		}
	}
	if !strict && zipFallback != "" {
		return zipFallback, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no sdist for release %s of project %s", version, shared.Normalize(name)))
}

// DownloadFile streams url into destDir, keeping the URL's basename,
// and returns the written path.
func (a *PyPIAdapter) DownloadFile(ctx context.Context, url string, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build download request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("download failed: " + url).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("file not found: " + url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("download failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download directory: " + destDir).
			WithCause(err)
	}
	destPath := filepath.Join(destDir, path.Base(url))
	out, err := os.Create(destPath)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file: " + destPath).
			WithCause(err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write file: " + destPath).
			WithCause(err)
	}
	return destPath, nil
}
