package testlist

// artifact.go contains resolution of built binaries into runnable test
// artifacts.

import (
	"github.com/perfgo/nextest/binarylist"
	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/pathmapper"
)

// TestArtifact is a test binary resolved against its package metadata and
// path-mapped for the run. It is accepted as input to New.
type TestArtifact struct {
	// Unique identifier of the binary
	BinaryID string
	// Package the binary belongs to, used for the test environment
	Package *metadata.PackageMetadata
	// Path to the binary at run time
	BinaryPath string
	// Target name as defined in the package manifest
	BinaryName string
	// Directory the tests are executed in (the package manifest directory)
	Cwd string
	// Platform the binary was built for
	BuildPlatform model.BuildPlatform
}

// ArtifactsFromBinaryList resolves every binary in list. If platform is
// non-empty only binaries built for it are kept. mapper may be nil.
func ArtifactsFromBinaryList(graph binarylist.PackageLookup, list *binarylist.BinaryList, mapper *pathmapper.Mapper, platform model.BuildPlatform) ([]TestArtifact, error) {
	artifacts := make([]TestArtifact, 0, len(list.Binaries))

	for _, bin := range list.Binaries {
		if platform != "" && platform != bin.BuildPlatform {
			continue
		}

		pkg, ok := graph.Metadata(bin.PackageID)
		if !ok {
			return nil, &binarylist.UnknownPackageError{PackageID: bin.PackageID}
		}

		artifacts = append(artifacts, TestArtifact{
			BinaryID:      bin.ID,
			Package:       pkg,
			BinaryPath:    mapper.MapBinary(bin.Path),
			BinaryName:    bin.Name,
			Cwd:           mapper.MapCwd(pkg.ManifestDir()),
			BuildPlatform: bin.BuildPlatform,
		})
	}

	return artifacts, nil
}
