package ports

// ModuleResolver maps a specifier written in a file to the file it refers to.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// Resolve returns the absolute path specifier refers to from the file origin.
	// ok is false when the specifier is a built-in module or cannot be resolved.
	Resolve(specifier, origin string) (resolved string, ok bool)
}
