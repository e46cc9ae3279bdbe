package cardfs

// FileDefinitionType discriminates the node kinds a tree definition file may
// declare. Valid values are DFType "df", ADFType "adf" and the four EF
// variants.
type FileDefinitionType string

const (
	DFType          FileDefinitionType = "df"
	ADFType         FileDefinitionType = "adf"
	TransparentType FileDefinitionType = "ef-transparent"
	LinearFixedType FileDefinitionType = "ef-linfixed"
	CyclicType      FileDefinitionType = "ef-cyclic"
	TransRecType    FileDefinitionType = "ef-transrec"
)

// SizeDef is a declared valid size or record-length range in bytes.
// A Max of 0 means unbounded.
type SizeDef struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max,omitempty" json:"max,omitempty"`
}

// FileDefinition describes one node of a card filesystem tree as loaded from
// a YAML or JSON definitions file. Directories nest their children under
// Files; EF variants reference their codec by registered name.
//
// Contents and Records optionally carry seed data (hex) for the simcard
// transport; they play no role when building the tree itself.
type FileDefinition struct {
	Type        FileDefinitionType `yaml:"type" json:"type"`
	FID         string             `yaml:"fid,omitempty" json:"fid,omitempty"`
	SFID        int                `yaml:"sfid,omitempty" json:"sfid,omitempty"`
	AID         string             `yaml:"aid,omitempty" json:"aid,omitempty"`
	Name        string             `yaml:"name,omitempty" json:"name,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`

	// Size constrains transparent (and transparent-record) EF bodies.
	Size *SizeDef `yaml:"size,omitempty" json:"size,omitempty"`
	// RecordLength constrains linear-fixed / cyclic EF records.
	RecordLength *SizeDef `yaml:"record_length,omitempty" json:"record_length,omitempty"`
	// RecordSize is the fixed per-record byte count of an ef-transrec.
	RecordSize int `yaml:"record_size,omitempty" json:"record_size,omitempty"`

	// Codec names a codec registered with the definitions package.
	Codec string `yaml:"codec,omitempty" json:"codec,omitempty"`

	Contents string   `yaml:"contents,omitempty" json:"contents,omitempty"`
	Records  []string `yaml:"records,omitempty" json:"records,omitempty"`

	Files []FileDefinition `yaml:"files,omitempty" json:"files,omitempty"`
}
