package render

// RenderPath is a complete strategy for getting a scene into the HDR
// target. The orchestrator owns the shadow pass and post-processing;
// a path is responsible for everything between.
type RenderPath interface {
	// OnAttach prepares GPU resources for the given target size. Called
	// once when the path becomes active.
	OnAttach(width, height int)

	// OnDetach releases path-owned resources when another path takes over.
	OnDetach()

	// Execute renders one frame into data.Target. Implementations must not
	// retain anything from data after returning.
	Execute(data *RenderPassData)

	// OnResize is called when the HDR target changes size.
	OnResize(width, height int)

	// NeedsDepthPrepass reports whether the orchestrator should run a
	// depth-only pass before Execute.
	NeedsDepthPrepass() bool

	// IsValid reports whether the path attached successfully. Invalid
	// paths are skipped, leaving the HDR target cleared.
	IsValid() bool

	Name() string
	Type() PathType
}
