//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"pypack/internal/adapters"
	"pypack/internal/app"
	"pypack/internal/policies"
	"pypack/internal/types"
	"pypack/tests/testutil"
)

const pypiMockScript = `
import json
from http.server import BaseHTTPRequestHandler, HTTPServer

PROJECTS = {
    "demo-project": {
        "info": {"name": "demo-project", "version": "1.5.0", "summary": "Demo project."},
        "releases": {
            "1.0.0": [
                {"filename": "demo-project-1.0.0.tar.gz",
                 "url": "http://localhost/demo-project-1.0.0.tar.gz",
                 "packagetype": "sdist", "digests": {"sha256": "aa"}}
            ],
            "1.5.0": [
                {"filename": "demo-project-1.5.0.tar.gz",
                 "url": "http://localhost/demo-project-1.5.0.tar.gz",
                 "packagetype": "sdist", "digests": {"sha256": "bb"}}
            ]
        }
    }
}

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        parts = self.path.strip("/").split("/")
        if len(parts) == 2 and parts[1] == "json" and parts[0] in PROJECTS:
            body = json.dumps(PROJECTS[parts[0]]).encode()
            self.send_response(200)
            self.send_header("Content-Type", "application/json")
            self.end_headers()
            self.wfile.write(body)
            return
        self.send_response(404)
        self.end_headers()

    def log_message(self, *args):
        pass

HTTPServer(("0.0.0.0", 8080), Handler).serve_forever()
`

const condaMockScript = `
import json
from http.server import BaseHTTPRequestHandler, HTTPServer

REPODATA = {
    "/demo-channel/noarch/repodata.json": {
        "packages": {
            "demo-project-1.5-py_0.tar.bz2": {"name": "demo-project"},
            "ruamel.yaml-0.17-py_0.tar.bz2": {"name": "ruamel.yaml"}
        }
    },
    "/demo-channel/linux-64/repodata.json": {
        "packages": {
            "numpy-1.26-py312_0.tar.bz2": {"name": "numpy"}
        }
    }
}

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        if self.path in REPODATA:
            body = json.dumps(REPODATA[self.path]).encode()
            self.send_response(200)
            self.send_header("Content-Type", "application/json")
            self.end_headers()
            self.wfile.write(body)
            return
        self.send_response(404)
        self.end_headers()

    def log_message(self, *args):
        pass

HTTPServer(("0.0.0.0", 8080), Handler).serve_forever()
`

func startMockServer(ctx context.Context, t *testing.T, script string) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", script},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

func TestPyPIAdapterAgainstMockIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startMockServer(ctx, t, pypiMockScript)
	t.Cleanup(cleanup)

	adapter := adapters.NewPyPIAdapter(endpoint, 10*time.Second)

	latest, err := adapter.LatestVersion(ctx, "demo-project")
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", latest)

	releases, err := adapter.Releases(ctx, "demo-project")
	require.NoError(t, err)
	assert.Len(t, releases, 2)

	_, err = adapter.LatestVersion(ctx, "missing-project")
	require.Error(t, err)
}

func TestBindRequirementsAgainstMockIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startMockServer(ctx, t, pypiMockScript)
	t.Cleanup(cleanup)

	path := testutil.WriteFile(t, t.TempDir(), "requirements.txt", "demo-project\n")

	service := app.Service{
		Index:       adapters.NewPyPIAdapter(endpoint, 10*time.Second),
		Classifiers: policies.NewClassifierPolicy(),
		Clock:       time.Now,
	}
	changed, err := service.BindRequirements(ctx, path, types.SpecifierOpGte, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo-project>=1.5.0\n", string(data))
}

func TestCondaAdapterAgainstMockChannel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startMockServer(ctx, t, condaMockScript)
	t.Cleanup(cleanup)

	cacheDir := filepath.Join(t.TempDir(), "conda-cache")
	adapter := adapters.NewCondaAdapter(endpoint, cacheDir, 10*time.Second)

	packages, err := adapter.ChannelPackages(ctx, "demo-channel")
	require.NoError(t, err)
	assert.Equal(t, []string{"demo-project", "numpy", "ruamel.yaml"}, packages)

	service := app.Service{
		Conda:       adapter,
		Classifiers: policies.NewClassifierPolicy(),
		Clock:       time.Now,
	}
	validated, err := service.ValidateCondaRequirements(ctx, []types.Requirement{
		{Name: "demo-project"},
		{Name: "ruamel-yaml"},
	}, []string{"demo-channel"})
	require.NoError(t, err)
	require.Len(t, validated, 2)
	assert.Equal(t, "demo-project", validated[0].Name)
	assert.Equal(t, "ruamel.yaml", validated[1].Name)

	require.NoError(t, adapter.ClearCache("demo-channel"))
}
