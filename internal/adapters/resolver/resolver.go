// Package resolver maps import specifiers to absolute file paths using Node.js resolution rules.
package resolver

import (
	"path/filepath"
	"strings"

	"go.trai.ch/impacted/internal/core/ports"
)

// probeExtensions are appended to an extension-less request, in order.
var probeExtensions = []string{
	".js", ".json", ".node", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx",
}

// sourceAlternates maps a requested JavaScript extension to the TypeScript sources
// that compile to it.
var sourceAlternates = map[string][]string{
	".js":  {".ts", ".tsx"},
	".jsx": {".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

var _ ports.ModuleResolver = (*Resolver)(nil)

// Resolver implements ports.ModuleResolver.
type Resolver struct {
	fsys      ports.FileSystem
	manifests ManifestReader
}

// New creates a Resolver reading files from fsys and manifests through manifests.
func New(fsys ports.FileSystem, manifests ManifestReader) *Resolver {
	return &Resolver{fsys: fsys, manifests: manifests}
}

// Resolve maps specifier, as written in origin, to an absolute path with symbolic
// links resolved, so a workspace package linked into node_modules is identified by its source.
// Built-in modules and anything that cannot be located report false.
func (r *Resolver) Resolve(specifier, origin string) (string, bool) {
	resolved, ok := r.resolve(specifier, origin)
	if !ok {
		return "", false
	}
	if real, err := r.fsys.Realpath(resolved); err == nil {
		return real, true
	}
	return resolved, true
}

func (r *Resolver) resolve(specifier, origin string) (string, bool) {
	if specifier == "" || IsBuiltin(specifier) {
		return "", false
	}
	if strings.HasPrefix(specifier, "#") {
		return r.resolveSubpathImport(specifier, origin)
	}
	return r.resolveRequest(specifier, filepath.Dir(origin))
}

func (r *Resolver) resolveSubpathImport(specifier, origin string) (string, bool) {
	m, ok := FindManifest(r.manifests, filepath.Dir(origin))
	if !ok || len(m.Imports) == 0 {
		return "", false
	}

	target, ok := matchMapping(m.Imports, specifier)
	if !ok || target == "" {
		return "", false
	}
	if !isPathRequest(target) {
		return r.resolveRequest(target, m.Dir)
	}
	return r.loadAsFile(filepath.Join(m.Dir, target))
}

// resolveRequest resolves a relative, absolute or bare request from dir.
func (r *Resolver) resolveRequest(request, dir string) (string, bool) {
	if !isPathRequest(request) {
		return r.loadNodeModules(request, dir)
	}

	p := request
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, request)
	}
	if !strings.HasSuffix(request, "/") {
		if resolved, ok := r.loadAsFile(p); ok {
			return resolved, true
		}
	}
	return r.loadAsDirectory(p)
}

func (r *Resolver) loadAsFile(p string) (string, bool) {
	if r.isFile(p) {
		return p, true
	}
	for _, ext := range probeExtensions {
		if r.isFile(p + ext) {
			return p + ext, true
		}
	}

	ext := filepath.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for _, alt := range sourceAlternates[ext] {
		if r.isFile(base + alt) {
			return base + alt, true
		}
	}
	return "", false
}

func (r *Resolver) loadAsDirectory(p string) (string, bool) {
	if m, err := r.manifests.Read(filepath.Join(p, ManifestFileName)); err == nil && m.Main != "" {
		main := filepath.Join(p, m.Main)
		if resolved, ok := r.loadAsFile(main); ok {
			return resolved, true
		}
		if resolved, ok := r.loadIndex(main); ok {
			return resolved, true
		}
	}
	return r.loadIndex(p)
}

func (r *Resolver) loadIndex(dir string) (string, bool) {
	for _, ext := range probeExtensions {
		candidate := filepath.Join(dir, "index"+ext)
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// loadNodeModules searches node_modules directories from dir up to the root.
func (r *Resolver) loadNodeModules(request, dir string) (string, bool) {
	name, subpath := splitPackageSpecifier(request)
	if name == "" {
		return "", false
	}

	for d := filepath.Clean(dir); ; {
		if filepath.Base(d) != "node_modules" {
			resolved, ok, final := r.loadPackage(filepath.Join(d, "node_modules", name), subpath)
			if ok || final {
				return resolved, ok
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", false
		}
		d = parent
	}
}

// loadPackage resolves subpath inside the package at pkgDir.
// final reports that the search must stop even when nothing resolved, which
// happens when the package declares exports that do not cover subpath.
func (r *Resolver) loadPackage(pkgDir, subpath string) (resolved string, ok, final bool) {
	m, err := r.manifests.Read(filepath.Join(pkgDir, ManifestFileName))
	if err == nil && m.Exports != nil {
		target, ok := resolveExports(m.Exports, subpath)
		if !ok {
			return "", false, true
		}
		p := filepath.Join(pkgDir, target)
		if r.isFile(p) {
			return p, true, true
		}
		return "", false, true
	}

	p := filepath.Join(pkgDir, subpath)
	if subpath != "." {
		if resolved, ok := r.loadAsFile(p); ok {
			return resolved, true, true
		}
	}
	if resolved, ok := r.loadAsDirectory(p); ok {
		return resolved, true, true
	}
	return "", false, false
}

// resolveExports resolves subpath ("." or "./x") against a package exports field.
func resolveExports(exports any, subpath string) (string, bool) {
	mapping, ok := exports.(map[string]any)
	if !ok || !hasSubpathKeys(mapping) {
		mapping = map[string]any{".": exports}
	}
	return matchMapping(mapping, subpath)
}

func hasSubpathKeys(mapping map[string]any) bool {
	for key := range mapping {
		if strings.HasPrefix(key, ".") {
			return true
		}
	}
	return false
}

// splitPackageSpecifier splits a bare request into the package name and a subpath.
func splitPackageSpecifier(request string) (name, subpath string) {
	n := 1
	if strings.HasPrefix(request, "@") {
		n = 2
	}
	parts := strings.SplitN(request, "/", n+1)
	if len(parts) < n || parts[0] == "" || parts[n-1] == "" {
		return "", ""
	}
	name = strings.Join(parts[:n], "/")
	if len(parts) > n && parts[n] != "" {
		return name, "./" + parts[n]
	}
	return name, "."
}

func isPathRequest(request string) bool {
	return request == "." || request == ".." ||
		strings.HasPrefix(request, "./") ||
		strings.HasPrefix(request, "../") ||
		filepath.IsAbs(request)
}

func (r *Resolver) isFile(p string) bool {
	info, err := r.fsys.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
