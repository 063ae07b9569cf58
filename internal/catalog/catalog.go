package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tools.yaml
var embeddedManifest []byte

const manifestParseErrorTemplateConstant = "failed to parse tool manifest: %w"

// ToolDescription names one gitq tool and states whether it mutates the repository.
type ToolDescription struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
	Mutates bool   `yaml:"mutates"`
}

type toolManifest struct {
	Tools []ToolDescription `yaml:"tools"`
}

// LoadTools parses the embedded manifest into tool descriptions.
func LoadTools() ([]ToolDescription, error) {
	parsedManifest := toolManifest{}
	if unmarshalError := yaml.Unmarshal(embeddedManifest, &parsedManifest); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}
	return parsedManifest.Tools, nil
}
