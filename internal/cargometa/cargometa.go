// Package cargometa is the Default-Package-Discovery collaborator: when the
// CLI isn't told which package to check, it shells out to `cargo metadata`
// to find the root package's name, exactly like the original
// cargo_metadata.rs.
package cargometa

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sourcegraph/should-be-public-checker/internal/command"
	"github.com/sourcegraph/should-be-public-checker/internal/output"
)

type metadata struct {
	Packages []struct {
		Name string `json:"name"`
	} `json:"packages"`
}

// DefaultPackageName runs `cargo metadata --no-deps --format-version=1
// --manifest-path <manifestPath>` and returns packages[0].name. A non-zero
// exit or a missing/non-string name field is fatal, matching the original.
func DefaultPackageName(manifestPath string, outputOptions output.Options) (string, error) {
	var name string
	var runErr error
	output.WithProgress("Resolving default package name", func() {
		name, runErr = defaultPackageName(manifestPath)
	}, outputOptions)
	return name, runErr
}

func defaultPackageName(manifestPath string) (string, error) {
	out, err := command.Run("", "cargo", "metadata",
		"--no-deps",
		"--format-version=1",
		"--manifest-path", manifestPath,
	)
	if err != nil {
		return "", errors.Wrapf(err, "cargo metadata failed: %s", out)
	}

	var meta metadata
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		return "", errors.Wrap(err, "decoding cargo metadata output")
	}
	if len(meta.Packages) == 0 || meta.Packages[0].Name == "" {
		return "", fmt.Errorf("cargo metadata returned no package name for %s", manifestPath)
	}
	return meta.Packages[0].Name, nil
}
