package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ReadPyvenv parses the pyvenv.cfg file of a virtual environment
// directory into a key/value map. Lines without "=" are skipped.
func ReadPyvenv(venvDir string) (map[string]string, error) {
	path := filepath.Join(venvDir, "pyvenv.cfg")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read pyvenv config: " + path).
			WithCause(err)
	}
	values := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, nil
}
