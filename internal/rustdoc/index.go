package rustdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rqerr"
)

// Index is the immutable, in-memory view over a loaded documentation
// corpus: every crate's index, plus the named sets that group crates for
// scoped search. Nothing mutates it after LoadIndex returns.
type Index struct {
	Crates map[string]*Crate
	Sets   map[string][]string

	// ADTs maps the last path segment of every path-summary entry, of any
	// item kind, to the crates that define it.
	ADTs map[string][]string
}

// LoadIndex reads dir/crate/*.json and dir/set/*.json into an Index.
// A crate file that fails to parse is logged and skipped rather than
// aborting the whole load; the returned errs slice carries one
// *rqerr.DeserializeError per skipped file.
func LoadIndex(dir string, log *rlog.Logger) (*Index, []error) {
	idx := &Index{
		Crates: map[string]*Crate{},
		Sets:   map[string][]string{},
		ADTs:   map[string][]string{},
	}

	var errs []error

	crateDir := filepath.Join(dir, "crate")
	entries, err := os.ReadDir(crateDir)
	if err != nil {
		return idx, []error{fmt.Errorf("rustdoc: reading %s: %w", crateDir, err)}
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(crateDir, entry.Name())
		name := strings.TrimSuffix(entry.Name(), ".json")
		krate, err := LoadCrate(path)
		if err != nil {
			derr := &rqerr.DeserializeError{File: path, Cause: err}
			errs = append(errs, derr)
			if log != nil {
				log.Errorf("skipping crate %s: %v", name, derr)
			}
			continue
		}
		idx.Crates[name] = krate
		idx.indexADTs(name, krate)
	}

	setDir := filepath.Join(dir, "set")
	if sets, err := os.ReadDir(setDir); err == nil {
		for _, entry := range sets {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(setDir, entry.Name())
			name := strings.TrimSuffix(entry.Name(), ".json")
			members, err := loadSet(path)
			if err != nil {
				derr := &rqerr.DeserializeError{File: path, Cause: err}
				errs = append(errs, derr)
				if log != nil {
					log.Errorf("skipping set %s: %v", name, derr)
				}
				continue
			}
			idx.Sets[name] = members
		}
	}

	return idx, errs
}

// LoadCrate reads and decodes a single rustdoc JSON crate file, independent
// of a full LoadIndex walk. Used by search's --single-crate-file flag.
func LoadCrate(path string) (*Crate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var krate Crate
	if err := json.Unmarshal(data, &krate); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return &krate, nil
}

func loadSet(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return members, nil
}

// indexADTs records every path-summary entry under its last path segment,
// unfiltered by kind, so callers can discover which crates define a given
// name regardless of whether it's a struct, trait, function, or module.
func (idx *Index) indexADTs(crateName string, krate *Crate) {
	for _, summary := range krate.Paths {
		if len(summary.Path) == 0 {
			continue
		}
		name := summary.Path[len(summary.Path)-1]
		idx.ADTs[name] = appendUnique(idx.ADTs[name], crateName)
	}
}

func appendUnique(ss []string, s string) []string {
	for _, existing := range ss {
		if existing == s {
			return ss
		}
	}
	return append(ss, s)
}
