package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pypack/internal/ports"
	"pypack/internal/shared"
)

const defaultCondaBaseURL = "https://conda.anaconda.org"
const defaultCondaTimeout = 10 * time.Second
const condaCacheTTL = 48 * time.Hour

// condaSubdirs are the repodata subdirectories whose package lists are
// unioned per channel.
var condaSubdirs = []string{"noarch", "linux-64"}

// CondaAdapter implements CondaChannelPort against anaconda.org
// repodata, with an on-disk TTL cache per channel. The cache is
// best-effort: failures to read or write it are logged and the listing
// is fetched fresh.
type CondaAdapter struct {
	BaseURL  string
	CacheDir string
	Client   *http.Client
	Now      func() time.Time
}

var _ ports.CondaChannelPort = (*CondaAdapter)(nil)

func NewCondaAdapter(baseURL string, cacheDir string, timeout time.Duration) *CondaAdapter {
	if baseURL == "" {
		baseURL = defaultCondaBaseURL
	}
	if cacheDir == "" {
		if userCache, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(userCache, "pypack", "conda")
		}
	}
	if timeout <= 0 {
		timeout = defaultCondaTimeout
	}
	return &CondaAdapter{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: timeout},
		Now:      time.Now,
	}
}

type condaCacheEntry struct {
	Expires  time.Time `json:"expires"`
	Packages []string  `json:"packages"`
}

type condaRepodata struct {
	Packages map[string]struct {
		Name string `json:"name"`
	} `json:"packages"`
}

// ChannelPackages returns the sorted union of package names available
// in a channel's noarch and linux-64 subdirectories.
func (a *CondaAdapter) ChannelPackages(ctx context.Context, channel string) ([]string, error) {
	if cached, ok := a.readCache(channel); ok {
		return cached, nil
	}

	names := map[string]struct{}{}
	for _, subdir := range condaSubdirs {
		endpoint := fmt.Sprintf("%s/%s/%s/repodata.json", a.BaseURL, channel, subdir)
		if err := a.collectPackages(ctx, endpoint, channel, names); err != nil {
			return nil, err
		}
	}

	packages := make([]string, 0, len(names))
	for name := range names {
		packages = append(packages, name)
	}
	sort.Strings(packages)

	a.writeCache(channel, packages)
	return packages, nil
}

func (a *CondaAdapter) collectPackages(ctx context.Context, endpoint string, channel string, names map[string]struct{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build conda request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("conda request failed: " + endpoint).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no such conda channel: " + channel)
	}
	if resp.StatusCode != http.StatusOK {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("conda request failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}

	var repodata condaRepodata
	if err := json.NewDecoder(resp.Body).Decode(&repodata); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode conda repodata: " + endpoint).
			WithCause(err)
	}
	for _, pkg := range repodata.Packages {
		if pkg.Name != "" {
			names[pkg.Name] = struct{}{}
		}
	}
	return nil
}

// ClearCache removes cached channel listings. With no arguments the
// whole cache directory is removed.
func (a *CondaAdapter) ClearCache(channels ...string) error {
	if a.CacheDir == "" {
		return nil
	}
	if len(channels) == 0 {
		if err := os.RemoveAll(a.CacheDir); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to clear conda cache").
				WithCause(err)
		}
		return nil
	}
	for _, channel := range channels {
		if err := os.Remove(a.cachePath(channel)); err != nil && !os.IsNotExist(err) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to clear conda cache for channel: " + channel).
				WithCause(err)
		}
	}
	return nil
}

func (a *CondaAdapter) cachePath(channel string) string {
	return filepath.Join(a.CacheDir, shared.Normalize(channel)+".json")
}

func (a *CondaAdapter) readCache(channel string) ([]string, bool) {
	if a.CacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(a.cachePath(channel))
	if err != nil {
		return nil, false
	}
	var entry condaCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().
			Str("channel", channel).
			Err(err).
			Msg("discarding unreadable conda cache entry")
		return nil, false
	}
	if a.Now().After(entry.Expires) {
		return nil, false
	}
	return entry.Packages, true
}

func (a *CondaAdapter) writeCache(channel string, packages []string) {
	if a.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(a.CacheDir, 0o755); err != nil {
		log.Warn().
			Str("channel", channel).
			Err(err).
			Msg("failed to create conda cache directory")
		return
	}
	entry := condaCacheEntry{
		Expires:  a.Now().Add(condaCacheTTL),
		Packages: packages,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.WriteFile(a.cachePath(channel), data, 0o644); err != nil {
		log.Warn().
			Str("channel", channel).
			Err(err).
			Msg("failed to write conda cache entry")
	}
}
