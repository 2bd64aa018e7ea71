package server

// LibraryServerConfig holds the mod-library layout contract shared with the
// external mod-loading tool. The disabled marker is fixed configuration, not
// something the engine derives.
type LibraryServerConfig struct {
	Root             string `mapstructure:"root"               yaml:"root"`
	DisabledMarker   string `mapstructure:"disabled_marker"    yaml:"disabled_marker"`
	KeySectionPrefix string `mapstructure:"key_section_prefix" yaml:"key_section_prefix"`
	Definitions      string `mapstructure:"definitions"        yaml:"definitions"`
	RescanInterval   string `mapstructure:"rescan_interval"    yaml:"rescan_interval"`
}
