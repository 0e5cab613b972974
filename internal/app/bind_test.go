package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypack/internal/policies"
	"pypack/internal/types"
)

// fakeIndex serves canned latest versions without touching the network.
type fakeIndex struct {
	latest map[string]string
}

func (f *fakeIndex) ProjectMetadata(_ context.Context, name string) (types.ProjectMetadata, error) {
	version, ok := f.latest[name]
	if !ok {
		return types.ProjectMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no such project on pypi: " + name)
	}
	return types.ProjectMetadata{Info: types.ProjectInfo{Name: name, Version: version}}, nil
}

func (f *fakeIndex) LatestVersion(ctx context.Context, name string) (string, error) {
	metadata, err := f.ProjectMetadata(ctx, name)
	if err != nil {
		return "", err
	}
	return metadata.Info.Version, nil
}

func (f *fakeIndex) Releases(context.Context, string) (map[string][]string, error) {
	return nil, nil
}

func (f *fakeIndex) ReleasesWithDigests(context.Context, string) (map[string][]types.FileURL, error) {
	return nil, nil
}

func (f *fakeIndex) SdistURL(context.Context, string, string, bool) (string, error) {
	return "", nil
}

func (f *fakeIndex) DownloadFile(context.Context, string, string) (string, error) {
	return "", nil
}

// fakeConda serves a fixed channel table.
type fakeConda struct {
	channels map[string][]string
}

func (f *fakeConda) ChannelPackages(_ context.Context, channel string) ([]string, error) {
	packages, ok := f.channels[channel]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no such conda channel: " + channel)
	}
	return packages, nil
}

func (f *fakeConda) ClearCache(...string) error { return nil }

func newTestService(index *fakeIndex, conda *fakeConda) Service {
	return Service{
		Index:       index,
		Conda:       conda,
		Classifiers: policies.NewClassifierPolicy(),
		Clock:       time.Now,
	}
}

func writeRequirementsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ---------- Bind tests ----------

func TestBindRequirementsPinsUnbound(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{"requests": "2.31.0"}}, nil)
	path := writeRequirementsFile(t, "# deps\nrequests\n")

	changed, err := service.BindRequirements(context.Background(), path, types.SpecifierOpNone, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# deps\nrequests>=2.31.0\n", string(data))
}

func TestBindRequirementsLeavesBoundAlone(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{}}, nil)
	path := writeRequirementsFile(t, "requests>=2.0\n")

	changed, err := service.BindRequirements(context.Background(), path, types.SpecifierOpGte, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestBindRequirementsCustomOperator(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{"numpy": "1.26.0"}}, nil)
	path := writeRequirementsFile(t, "numpy\n")

	changed, err := service.BindRequirements(context.Background(), path, types.SpecifierOpCompat, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "numpy~=1.26.0\n", string(data))
}

func TestBindRequirementsInvalidOperator(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{"requests": "2.31.0"}}, nil)
	path := writeRequirementsFile(t, "requests\n")

	_, err := service.BindRequirements(context.Background(), path, types.SpecifierOp("=>"), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "requests\n", string(data), "file must not change on invalid operator")
}

func TestBindRequirementsKeepsInvalidLines(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{"requests": "2.31.0"}}, nil)
	path := writeRequirementsFile(t, "requests\n!!! keep me\n")

	changed, err := service.BindRequirements(context.Background(), path, types.SpecifierOpNone, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "!!! keep me\nrequests>=2.31.0\n", string(data))
}

func TestBindRequirementsURLSkipped(t *testing.T) {
	service := newTestService(&fakeIndex{latest: map[string]string{}}, nil)
	path := writeRequirementsFile(t, "foo@ https://example.com/foo.tar.gz\n")

	changed, err := service.BindRequirements(context.Background(), path, types.SpecifierOpNone, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}
