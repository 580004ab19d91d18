package types

// OpenFlags control how a store is opened and which layers it cascades.
type OpenFlags uint8

const (
	// IncludeGlobals merges system-wide entries into the defaults layer.
	IncludeGlobals OpenFlags = 1 << iota
	// CascadeConfig loads the store's defaults overlay file.
	CascadeConfig

	// SimpleConfig opens the bare user file with no defaults cascade.
	SimpleConfig OpenFlags = 0
	// FullConfig is the standard mode for application configuration.
	FullConfig OpenFlags = IncludeGlobals | CascadeConfig
)

// String returns a readable form of the flags for logs and errors.
func (f OpenFlags) String() string {
	switch f {
	case SimpleConfig:
		return "simple"
	case FullConfig:
		return "full"
	case IncludeGlobals:
		return "globals"
	case CascadeConfig:
		return "cascade"
	default:
		return "unknown"
	}
}

// Location selects the base directory family a store file lives in.
type Location uint8

const (
	// GenericConfigLocation is the shared user configuration directory.
	GenericConfigLocation Location = iota
	// AppDataLocation is the per-application data directory.
	AppDataLocation
	// StateLocation is the per-application state directory.
	StateLocation
)

// String returns the location name used in logs and cache keys.
func (l Location) String() string {
	switch l {
	case GenericConfigLocation:
		return "config"
	case AppDataLocation:
		return "appdata"
	case StateLocation:
		return "state"
	default:
		return "unknown"
	}
}

// Association describes which component a store belongs to. It only affects
// where an unqualified file name is resolved; absolute paths ignore it.
type Association uint8

const (
	// NoAssociation resolves file names directly under the location directory.
	NoAssociation Association = iota
	// AppAssociation resolves file names under an application subdirectory.
	AppAssociation
)

// WriteFlags are persistence hints passed through item write paths to the
// store.
type WriteFlags uint8

const (
	// WriteNormal is the default persistent write behavior.
	WriteNormal WriteFlags = 0
	// WriteForce writes the entry even when the value is unchanged.
	WriteForce WriteFlags = 1 << 0
	// WriteNoNotify suppresses change notification for this write.
	WriteNoNotify WriteFlags = 1 << 1
)
