package types

// ProjectMetadata is the decoded response of the PyPI JSON API for one
// project: https://pypi.org/pypi/<name>/json.
type ProjectMetadata struct {
	Info     ProjectInfo              `json:"info"`
	Releases map[string][]ReleaseFile `json:"releases"`
}

// ProjectInfo carries the subset of the "info" block this tool consumes.
type ProjectInfo struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Summary     string            `json:"summary"`
	HomePage    string            `json:"home_page"`
	ProjectURLs map[string]string `json:"project_urls"`
}

// ReleaseFile is one downloadable artifact of a release.
type ReleaseFile struct {
	Filename      string            `json:"filename"`
	URL           string            `json:"url"`
	PackageType   string            `json:"packagetype"`
	Digests       map[string]string `json:"digests"`
	Size          int64             `json:"size"`
	RequiresDist  []string          `json:"requires_dist"`
	UploadTimeISO string            `json:"upload_time_iso_8601"`
}

// FileURL pairs a release file's download URL with its sha256 digest.
type FileURL struct {
	URL    string
	Digest string
}

// ParsedSdistFilename is a source-distribution filename split into its
// components. Project keeps the casing used in the filename; Extension
// keeps its leading dot.
type ParsedSdistFilename struct {
	Project   string
	Version   string
	Extension string
}

func (p ParsedSdistFilename) String() string {
	return p.Project + "-" + p.Version + p.Extension
}
