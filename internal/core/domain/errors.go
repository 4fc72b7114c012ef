package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleNotFound is returned when no candidate file or directory matches a specifier.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrMainFieldsConflict is returned when mainFields is combined with the deprecated
	// module, main or jsnext options.
	ErrMainFieldsConflict = zerr.New("mainFields cannot be combined with the deprecated module, main or jsnext options")

	// ErrEmptyMainFields is returned when the effective main-field list is empty.
	ErrEmptyMainFields = zerr.New("effective main-field list is empty")

	// ErrRemovedOption is returned when a configuration uses an option that has been removed.
	ErrRemovedOption = zerr.New("option has been removed")

	// ErrManifestParseFailed is returned when a package manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrProbeFailed is returned when a filesystem probe fails for a reason other than absence.
	ErrProbeFailed = zerr.New("filesystem probe failed")

	// ErrReadFailed is returned when file contents cannot be read.
	ErrReadFailed = zerr.New("failed to read file")

	// ErrRealpathFailed is returned when a symlink cannot be resolved to its real path.
	ErrRealpathFailed = zerr.New("failed to resolve real path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoSpecifiers is returned when a resolve run is requested without specifiers.
	ErrNoSpecifiers = zerr.New("no specifiers given")
)
