package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/connline/pkg/pipeline"
)

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     runStats
}

// writeArtifacts writes each artifact to a file. With a single format the
// output path is used as is ("-" means stdout); with several it is a base
// path that gets one extension per format.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		if err := writeOutput(p.output, p.artifacts[p.formats[0]]); err != nil {
			return err
		}
		if p.output != "-" {
			printSuccess("Rendered %s", p.formats[0])
			printFile(p.output)
			printStats(p.stats)
		}
		return nil
	}

	base := basePath(p.output, p.input)
	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, format := range p.formats {
		path := base + "." + pipeline.Extension(format)
		if err := writeOutput(path, p.artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(p.stats)
	return nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a ".layout" suffix) from
// input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing; "-" and "" mean stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
