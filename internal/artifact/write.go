package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/vango-dev/querido/internal/errors"
)

// ManifestFileName is the name of the manifest written alongside generated
// artifacts, recording the checksum of each so a re-run can detect drift.
const ManifestFileName = "manifest.json"

// Manifest maps an artifact's relative path to its content checksum.
type Manifest map[string]string

// Write writes every artifact into dir atomically (write to a temp file,
// then rename) and returns a manifest of what was written. A partially
// failed batch leaves no half-written file in dir: each artifact's
// temp file lives beside its destination and is renamed only once fully
// flushed.
func Write(dir string, artifacts []Artifact) (Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("Q300").Wrap(err)
	}

	manifest := make(Manifest, len(artifacts))
	for _, a := range artifacts {
		dest := filepath.Join(dir, a.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, errors.New("Q300").Wrap(err)
		}
		if err := writeAtomic(dest, a.Content); err != nil {
			return nil, errors.New("Q300").
				WithDetail("could not write " + a.Path + ": " + err.Error())
		}

		sum := sha256.Sum256(a.Content)
		manifest[a.Path] = hex.EncodeToString(sum[:])
	}

	if err := writeManifest(dir, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func writeAtomic(dest string, content []byte) error {
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

func writeManifest(dir string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.New("Q300").Wrap(err)
	}
	return writeAtomic(filepath.Join(dir, ManifestFileName), data)
}

// ReadManifest loads a previously written manifest, or nil if none exists
// yet in dir.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New("Q300").Wrap(err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.New("Q300").Wrap(err)
	}
	return manifest, nil
}

// Stale reports which paths in manifest are absent from current, meaning
// they were generated by a previous compile but no longer correspond to
// any live literal and should be removed.
func Stale(manifest, current Manifest) []string {
	var stale []string
	for path := range manifest {
		if _, ok := current[path]; !ok {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	return stale
}
