package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type RunParameters struct {
	Title            string `yaml:"Title"`
	MeshFile         string `yaml:"MeshFile"`
	PrintStatistics  bool   `yaml:"PrintStatistics"`
	CheckReciprocity bool   `yaml:"CheckReciprocity"`
	Profile          bool   `yaml:"Profile"`
}

func (rp *RunParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RunParameters) Validate() error {
	if rp.MeshFile == "" {
		return fmt.Errorf("no MeshFile specified in run parameters")
	}
	return nil
}

func (rp *RunParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%s]\t\t= Mesh File\n", rp.MeshFile)
	fmt.Printf("[%v]\t\t\t= Print Statistics\n", rp.PrintStatistics)
	fmt.Printf("[%v]\t\t\t= Check Reciprocity\n", rp.CheckReciprocity)
}
