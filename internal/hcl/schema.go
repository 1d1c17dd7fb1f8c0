package hcl

import "github.com/hashicorp/hcl/v2"

// fileSchema is the top-level structure of one configuration file.
type fileSchema struct {
	Toolchain  *toolchainBlock  `hcl:"toolchain,block"`
	Properties *propertiesBlock `hcl:"properties,block"`
	Projects   []*projectBlock  `hcl:"project,block"`
}

// toolchainBlock describes the external build program.
type toolchainBlock struct {
	Program    string         `hcl:"program"`
	Arguments  string         `hcl:"arguments,optional"`
	WorkingDir string         `hcl:"working_dir,optional"`
	Env        hcl.Expression `hcl:"env,optional"`
}

// propertiesBlock carries free-form global build properties; every
// attribute becomes one property.
type propertiesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// projectBlock declares one project file to load.
type projectBlock struct {
	Path    string `hcl:"path,label"`
	Recurse bool   `hcl:"recurse,optional"`
}
