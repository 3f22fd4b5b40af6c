package devserver

import (
	"sort"
	"strings"

	"github.com/vango-dev/querido/internal/artifact"
	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/query"
	"github.com/vango-dev/querido/internal/schema"
)

// Diagnostic is one problem found while compiling a literal, surfaced to
// the dev HTTP endpoints and the terminal log.
type Diagnostic struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CompileResult is the value the top-level memoized compile function
// produces. It holds no wall-clock data so that two compiles over
// unchanged literal bodies compare equal and the query engine's
// equality-elision fast path applies.
type CompileResult struct {
	Artifacts   []artifact.Artifact `json:"artifacts"`
	Diagnostics []Diagnostic        `json:"diagnostics"`
}

// literalKey returns a stable identity for the n-th literal (0-indexed, in
// scan order) found in the file at absPath, used as both the query.Key seed
// and the map key tracking that literal's SourceId across rescans.
func literalKey(absPath string, n int) string {
	return absPath + "#" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// rescan re-extracts every tagged literal under the project's source
// directories, updates the query database's sources to match, and calls
// the top-level compile function. It must only run on the server's command
// goroutine.
func (s *Server) rescan() CompileResult {
	var allLiterals []parse.Literal
	for _, root := range s.cfg.Project.SourcePaths() {
		literals, err := parse.ScanDir(root, s.cfg.Project.Watch.Ignore, parse.Options{})
		if err != nil {
			return CompileResult{Diagnostics: []Diagnostic{{Path: root, Code: "Q102", Message: err.Error()}}}
		}
		allLiterals = append(allLiterals, literals...)
	}

	perFile := map[string]int{}
	newKeys := make([]string, 0, len(allLiterals))
	seen := map[string]bool{}

	for _, lit := range allLiterals {
		n := perFile[lit.AbsolutePath]
		perFile[lit.AbsolutePath]++
		key := literalKey(lit.AbsolutePath, n)
		seen[key] = true
		newKeys = append(newKeys, key)

		id, ok := s.contentSources[key]
		if !ok {
			id = query.Set(s.db, query.NewInput(query.HashKeyString(key), lit.Body))
			s.contentSources[key] = id
		} else {
			query.Set(s.db, query.NewInput(id.Key(), lit.Body))
		}
		s.literalMeta[key] = lit
	}

	for key, id := range s.contentSources {
		if seen[key] {
			continue
		}
		query.Remove(s.db, id)
		delete(s.contentSources, key)
		delete(s.literalMeta, key)
	}

	sort.Strings(newKeys)
	query.Set(s.db, query.NewInput(s.filesSourceID.Key(), newKeys))

	result, did, err := s.compileAll.Call(s.db)
	if err != nil {
		return CompileResult{Diagnostics: []Diagnostic{{Code: "Q300", Message: err.Error()}}}
	}
	s.lastRecalculated = did == query.Recalculated
	return result
}

func (s *Server) compileInner(db *query.Database, _ query.ParamId) (CompileResult, error) {
	keys, err := query.Get(db, s.filesSourceID)
	if err != nil {
		return CompileResult{}, err
	}

	var result CompileResult
	nameCounts := map[string]int{}

	for _, key := range keys {
		sourceID, ok := s.contentSources[key]
		if !ok {
			continue
		}
		body, err := query.Get(db, sourceID)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: key, Code: "Q001", Message: err.Error()})
			continue
		}

		lit := s.literalMeta[key]
		rootType, set, err := schema.ParseSelection(body)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: lit.RelativePath, Code: "Q101", Message: err.Error()})
			continue
		}

		if diags := s.schema.Validate(rootType, set); len(diags) > 0 {
			for _, d := range diags {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: lit.RelativePath, Code: d.Code, Message: d.String()})
			}
			continue
		}

		name := exportedArtifactName(rootType, nameCounts)
		a, err := artifact.Render(s.schema, artifact.Query{
			Name:       name,
			SourcePath: lit.RelativePath,
			Line:       lit.Line,
			RootType:   rootType,
			Selection:  set,
		})
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: lit.RelativePath, Code: "Q300", Message: err.Error()})
			continue
		}
		result.Artifacts = append(result.Artifacts, a)
	}

	sort.Slice(result.Artifacts, func(i, j int) bool { return result.Artifacts[i].Path < result.Artifacts[j].Path })
	return result, nil
}

func exportedArtifactName(rootType string, counts map[string]int) string {
	base := strings.ToUpper(rootType[:1]) + rootType[1:] + "Query"
	n := counts[base]
	counts[base]++
	if n == 0 {
		return base
	}
	return base + itoa(n)
}
