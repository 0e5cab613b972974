package adapters

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// checksumBlockSize is the read block used when hashing, so large
// artifacts never load fully into memory.
const checksumBlockSize = 1 << 20

func hashFile(path string, digest hash.Hash) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open file for hashing: " + path).
			WithCause(err)
	}
	defer file.Close()
	return hashReader(file, digest)
}

func hashReader(reader io.Reader, digest hash.Hash) (int64, error) {
	written, err := io.CopyBuffer(digest, reader, make([]byte, checksumBlockSize))
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to hash stream").
			WithCause(err)
	}
	return written, nil
}

// SHA256Hash returns the hex SHA-256 digest of a file.
func SHA256Hash(path string) (string, error) {
	digest := sha256.New()
	if _, err := hashFile(path, digest); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// SHA256HashReader returns the hex SHA-256 digest of a stream.
func SHA256HashReader(reader io.Reader) (string, error) {
	digest := sha256.New()
	if _, err := hashReader(reader, digest); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// MD5Hash returns the hex MD5 digest of a file.
func MD5Hash(path string) (string, error) {
	digest := md5.New()
	if _, err := hashFile(path, digest); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// CheckSHA256Hash reports whether a file's SHA-256 digest matches the
// expected hex digest.
func CheckSHA256Hash(path string, expected string) (bool, error) {
	actual, err := SHA256Hash(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

// RecordEntry builds a PEP 376 RECORD line for a file:
// path,sha256=<urlsafe-base64-no-padding>,<size>. The recorded path is
// relative to relativeTo when given.
func RecordEntry(path string, relativeTo string) (string, error) {
	digest := sha256.New()
	size, err := hashFile(path, digest)
	if err != nil {
		return "", err
	}
	recorded := filepath.ToSlash(path)
	if relativeTo != "" {
		rel, err := filepath.Rel(relativeTo, path)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("cannot express " + path + " relative to " + relativeTo).
				WithCause(err)
		}
		recorded = filepath.ToSlash(rel)
	}
	encoded := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(digest.Sum(nil))
	return fmt.Sprintf("%s,sha256=%s,%d", recorded, encoded, size), nil
}
