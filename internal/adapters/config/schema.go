package config

// Mortarfile represents the structure of the mortar.yaml configuration file.
// Every field is optional; absent fields keep their built-in defaults.
type Mortarfile struct {
	Target   string   `yaml:"target"`
	CXX      string   `yaml:"cxx"`
	CXXFlags []string `yaml:"cxxflags"`
	LDFlags  []string `yaml:"ldflags"`
}
