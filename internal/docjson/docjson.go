// Package docjson is the Doc-JSON Provider collaborator: it shells out to a
// nightly rustdoc toolchain to build the JSON documentation index for a
// package and hands the bytes to internal/rustdoc for decoding.
//
// This is an external boundary, not part of the core analysis (see the
// design notes on collaborators): it owns the one genuinely slow, blocking
// step in this tool -- invoking `cargo` -- and nothing else.
package docjson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sourcegraph/should-be-public-checker/internal/command"
	"github.com/sourcegraph/should-be-public-checker/internal/output"
	"github.com/sourcegraph/should-be-public-checker/internal/rustdoc"
)

// Build runs `cargo +nightly rustdoc` (via rustdoc-json's conventions) for
// the package named by pkg rooted at manifestPath, then decodes the result.
// The target directory is derived exactly like the original implementation's
// build_rustdoc_json.rs: a directory under the system temp dir keyed by the
// canonicalized manifest path, so repeated runs against the same manifest
// reuse cargo's incremental build cache instead of colliding with other
// projects' target dirs.
func Build(manifestPath, pkg string, outputOptions output.Options) (*rustdoc.DocIndex, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, errors.Wrap(err, "resolving manifest path")
	}

	targetDir := TargetDir(abs, pkg)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating target dir")
	}

	var data []byte
	var buildErr error
	output.WithProgress(fmt.Sprintf("Building rustdoc JSON for %s", pkg), func() {
		data, buildErr = build(abs, pkg, targetDir)
	}, outputOptions)
	if buildErr != nil {
		return nil, buildErr
	}

	idx, err := rustdoc.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding rustdoc json")
	}
	return idx, nil
}

func build(manifestPath, pkg, targetDir string) ([]byte, error) {
	dir := filepath.Dir(manifestPath)
	args := []string{
		"+nightly", "rustdoc",
		"--manifest-path", manifestPath,
		"--package", pkg,
		"--target-dir", targetDir,
		"--",
		"-Z", "unstable-options",
		"--output-format", "json",
		"--document-private-items",
	}
	out, err := command.Run(dir, "cargo", args...)
	if err != nil {
		return nil, errors.Wrapf(err, "cargo rustdoc failed: %s", out)
	}

	jsonPath := filepath.Join(targetDir, "doc", strings.ReplaceAll(pkg, "-", "_")+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", jsonPath)
	}
	return data, nil
}

// TargetDir reproduces build_rustdoc_json.rs's target directory derivation:
// <system temp>/should-be-public-checker-targets/<manifest path's non-root
// components, "_"-joined>/<package>.
func TargetDir(absManifestPath, pkg string) string {
	clean := filepath.Clean(absManifestPath)
	parts := strings.Split(clean, string(filepath.Separator))
	var nonRoot []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		nonRoot = append(nonRoot, p)
	}
	joined := strings.Join(nonRoot, "_")
	return filepath.Join(os.TempDir(), "should-be-public-checker-targets", joined, pkg)
}
