package domain

// EmptyModuleID is the virtual id substituted for browser-map entries that
// map a specifier to `false`. The leading NUL keeps it distinct from any real
// filesystem path; the loading collaborator must serve EmptyModuleSource for it.
const EmptyModuleID = "\x00virtual:empty"

// EmptyModuleSource is the fixed payload of the empty stub module.
var EmptyModuleSource = []byte("export default {};\n")

// ResolvedModule is the outcome of one successful resolution. It is produced
// once per request and can be looked up again by ID for side-effect queries.
type ResolvedModule struct {
	// ID is the absolute path of the resolved file, or EmptyModuleID.
	ID string
	// SideEffects is the manifest's declaration evaluated for ID.
	SideEffects SideEffects
	// ManifestInfo describes the package that owns ID, when one was found.
	ManifestInfo *ManifestInfo
}

// IsEmptyStub reports whether the record refers to the virtual empty module.
func (m *ResolvedModule) IsEmptyStub() bool {
	return m != nil && m.ID == EmptyModuleID
}
