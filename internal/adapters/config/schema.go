package config

// Resolvefile represents the structure of the resolve.yaml configuration file.
type Resolvefile struct {
	MainFields       []string       `yaml:"mainFields"`
	Module           *bool          `yaml:"module"`
	Main             *bool          `yaml:"main"`
	JSNext           *bool          `yaml:"jsnext"`
	Browser          bool           `yaml:"browser"`
	Extensions       []string       `yaml:"extensions"`
	Dedupe           []string       `yaml:"dedupe"`
	PreferBuiltins   *bool          `yaml:"preferBuiltins"`
	RootDir          string         `yaml:"rootDir"`
	Jail             string         `yaml:"jail"`
	Only             []string       `yaml:"only"`
	ModulesOnly      bool           `yaml:"modulesOnly"`
	PreserveSymlinks bool           `yaml:"preserveSymlinks"`
	Custom           map[string]any `yaml:"custom"`

	// CustomResolveOptions was removed together with the switch to the
	// built-in search; its presence is a setup error.
	CustomResolveOptions map[string]any `yaml:"customResolveOptions"`
}
