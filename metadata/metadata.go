// Package metadata provides lookups of package metadata as reported by the
// build tool's metadata command. It does not resolve the build graph; it only
// indexes the packages the build tool already resolved.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const procMacroKind = "proc-macro"

// Target is a single build target of a package.
type Target struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

// PackageMetadata holds the identity fields of a package. Optional fields are
// empty when the manifest does not set them.
type PackageMetadata struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	ManifestPath string   `json:"manifest_path"`
	Authors      []string `json:"authors"`
	Description  string   `json:"description"`
	Homepage     string   `json:"homepage"`
	License      string   `json:"license"`
	LicenseFile  string   `json:"license_file"`
	Repository   string   `json:"repository"`
	Targets      []Target `json:"targets"`
}

// ManifestDir returns the directory containing the package manifest. Tests
// are executed in this directory.
func (p *PackageMetadata) ManifestDir() string {
	return filepath.Dir(p.ManifestPath)
}

// IsProcMacro returns true if the package builds a proc-macro target.
func (p *PackageMetadata) IsProcMacro() bool {
	for _, target := range p.Targets {
		for _, kind := range target.Kind {
			if kind == procMacroKind {
				return true
			}
		}
	}
	return false
}

// Graph indexes package metadata by package ID.
type Graph struct {
	WorkspaceRoot string
	packages      map[string]*PackageMetadata
}

// NewGraph builds a graph from already decoded packages.
func NewGraph(workspaceRoot string, packages ...PackageMetadata) *Graph {
	g := &Graph{
		WorkspaceRoot: workspaceRoot,
		packages:      make(map[string]*PackageMetadata, len(packages)),
	}
	for i := range packages {
		pkg := packages[i]
		g.packages[pkg.ID] = &pkg
	}
	return g
}

// Metadata returns the metadata of a package, or false if the package is not
// part of the graph.
func (g *Graph) Metadata(id string) (*PackageMetadata, bool) {
	pkg, ok := g.packages[id]
	return pkg, ok
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.packages)
}

type metadataJSON struct {
	Packages      []nullablePackage `json:"packages"`
	WorkspaceRoot string            `json:"workspace_root"`
}

// nullablePackage mirrors PackageMetadata but tolerates JSON nulls for the
// optional fields.
type nullablePackage struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	ManifestPath string   `json:"manifest_path"`
	Authors      []string `json:"authors"`
	Description  *string  `json:"description"`
	Homepage     *string  `json:"homepage"`
	License      *string  `json:"license"`
	LicenseFile  *string  `json:"license_file"`
	Repository   *string  `json:"repository"`
	Targets      []Target `json:"targets"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Parse decodes the build tool's metadata JSON.
func Parse(r io.Reader) (*Graph, error) {
	var raw metadataJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse package metadata: %w", err)
	}

	packages := make([]PackageMetadata, 0, len(raw.Packages))
	for _, p := range raw.Packages {
		if p.ID == "" {
			return nil, fmt.Errorf("failed to parse package metadata: package %q has no id", p.Name)
		}
		packages = append(packages, PackageMetadata{
			ID:           p.ID,
			Name:         p.Name,
			Version:      p.Version,
			ManifestPath: p.ManifestPath,
			Authors:      p.Authors,
			Description:  deref(p.Description),
			Homepage:     deref(p.Homepage),
			License:      deref(p.License),
			LicenseFile:  deref(p.LicenseFile),
			Repository:   deref(p.Repository),
			Targets:      p.Targets,
		})
	}

	return NewGraph(raw.WorkspaceRoot, packages...), nil
}

// Load reads and decodes a metadata JSON file.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package metadata: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
