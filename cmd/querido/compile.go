package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/querido/internal/artifact"
	"github.com/vango-dev/querido/internal/config"
	"github.com/vango-dev/querido/internal/parse"
	"github.com/vango-dev/querido/internal/schema"
)

func compileCmd() *cobra.Command {
	var (
		output  string
		archive string
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile all tagged literals once and exit",
		Long: `Scan the project's source directories, validate every tagged literal
against the schema, and write the generated artifacts.

Exits non-zero if any literal fails to validate.

Examples:
  querido compile
  querido compile --output=dist/__generated__
  querido compile --archive=s3://my-bucket/compiles/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(output, archive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Artifact output directory (default from querido.json)")
	cmd.Flags().StringVar(&archive, "archive", "", "Upload a tarball of the output directory to s3://bucket/prefix")

	return cmd
}

func runCompile(output, archive string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if output != "" {
		cfg.Artifacts.Output = output
	}

	s, err := schema.Load(cfg.SchemaPath())
	if err != nil {
		return err
	}

	artifacts, diags, err := compileProject(cfg, s)
	if err != nil {
		return err
	}

	if len(diags) > 0 {
		for _, d := range diags {
			errorMsg("%s:%s %s", d.Path, d.Code, d.Message)
		}
		return fmt.Errorf("%d literal(s) failed to validate", len(diags))
	}

	manifest, err := artifact.Write(cfg.ArtifactOutputPath(), artifacts)
	if err != nil {
		return err
	}

	success("Compiled %d artifact(s) to %s", len(artifacts), cfg.ArtifactOutputPath())
	paths := make([]string, 0, len(manifest))
	for path := range manifest {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		info(path)
	}

	if archive != "" {
		dest, err := parseArchiveDestination(archive)
		if err != nil {
			return err
		}
		if err := uploadArchive(cfg.ArtifactOutputPath(), dest); err != nil {
			return err
		}
	}

	return nil
}

type compileDiagnostic struct {
	Path    string
	Code    string
	Message string
}

// compileProject runs the same scan-validate-render pipeline as the dev
// server's memoized compile step, minus the query engine: a one-shot run
// has nothing to memoize against.
func compileProject(cfg *config.Config, s *schema.Schema) ([]artifact.Artifact, []compileDiagnostic, error) {
	var literals []parse.Literal
	for _, root := range cfg.SourcePaths() {
		found, err := parse.ScanDir(root, cfg.Watch.Ignore, parse.Options{})
		if err != nil {
			return nil, nil, err
		}
		literals = append(literals, found...)
	}

	var (
		artifacts  []artifact.Artifact
		diags      []compileDiagnostic
		nameCounts = map[string]int{}
	)

	for _, lit := range literals {
		rootType, set, err := schema.ParseSelection(lit.Body)
		if err != nil {
			diags = append(diags, compileDiagnostic{Path: lit.RelativePath, Code: "Q101", Message: err.Error()})
			continue
		}

		if vdiags := s.Validate(rootType, set); len(vdiags) > 0 {
			for _, d := range vdiags {
				diags = append(diags, compileDiagnostic{Path: lit.RelativePath, Code: d.Code, Message: d.String()})
			}
			continue
		}

		name := exportedArtifactName(rootType, nameCounts)
		a, err := artifact.Render(s, artifact.Query{
			Name:       name,
			SourcePath: lit.RelativePath,
			Line:       lit.Line,
			RootType:   rootType,
			Selection:  set,
		})
		if err != nil {
			diags = append(diags, compileDiagnostic{Path: lit.RelativePath, Code: "Q300", Message: err.Error()})
			continue
		}
		artifacts = append(artifacts, a)
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	return artifacts, diags, nil
}

// parseArchiveDestination splits an s3://bucket/prefix URI into its parts.
func parseArchiveDestination(uri string) (artifact.ArchiveDestination, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return artifact.ArchiveDestination{}, fmt.Errorf("--archive must be an s3:// URI, got %q", uri)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return artifact.ArchiveDestination{}, fmt.Errorf("--archive is missing a bucket name: %q", uri)
	}
	return artifact.ArchiveDestination{Bucket: bucket, Prefix: prefix}, nil
}

func uploadArchive(dir string, dest artifact.ArchiveDestination) error {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	archiver := artifact.NewArchiver(s3.NewFromConfig(awsCfg), dest)
	key, err := archiver.Upload(ctx, dir)
	if err != nil {
		return err
	}

	success("Archived to s3://%s/%s", dest.Bucket, key)
	return nil
}

func exportedArtifactName(rootType string, counts map[string]int) string {
	base := strings.ToUpper(rootType[:1]) + rootType[1:] + "Query"
	n := counts[base]
	counts[base]++
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, n)
}
