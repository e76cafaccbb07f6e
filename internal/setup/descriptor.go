package setup

// Slot names as they appear in a serialised descriptor.
const (
	SlotCfg               = "cfg"
	SlotModel             = "model"
	SlotConductor         = "conductor"
	SlotInsulator         = "insulator"
	SlotHeatConductor     = "heat-conductor"
	SlotHeatInsulator     = "heat-insulator"
	SlotCooling           = "cooling"
	SlotRobin             = "robin"
	SlotFlux              = "flux"
	SlotMagneticConductor = "magnetic-conductor"
	SlotMagneticInsulator = "magnetic-insulator"
	SlotElasticConductor  = "elastic-conductor"
	SlotElasticInsulator  = "elastic-insulator"
	SlotElastic1Conductor = "elastic1-conductor"
	SlotElastic1Insulator = "elastic1-insulator"
	SlotElastic2Conductor = "elastic2-conductor"
	SlotElastic2Insulator = "elastic2-insulator"
	SlotStats             = "stats"
	SlotMaterialDef       = "material_def"
)

// Descriptor is the template set of one resolved selection. Unset
// conditional slots are empty strings and are omitted when serialised.
type Descriptor struct {
	Cfg       string `json:"cfg" yaml:"cfg"`
	Model     string `json:"model" yaml:"model"`
	Conductor string `json:"conductor" yaml:"conductor"`
	Insulator string `json:"insulator" yaml:"insulator"`

	HeatConductor string `json:"heat-conductor,omitempty" yaml:"heat-conductor,omitempty"`
	HeatInsulator string `json:"heat-insulator,omitempty" yaml:"heat-insulator,omitempty"`
	Cooling       string `json:"cooling,omitempty" yaml:"cooling,omitempty"`
	Robin         string `json:"robin,omitempty" yaml:"robin,omitempty"`
	Flux          string `json:"flux,omitempty" yaml:"flux,omitempty"`

	MagneticConductor string `json:"magnetic-conductor,omitempty" yaml:"magnetic-conductor,omitempty"`
	MagneticInsulator string `json:"magnetic-insulator,omitempty" yaml:"magnetic-insulator,omitempty"`

	ElasticConductor  string `json:"elastic-conductor,omitempty" yaml:"elastic-conductor,omitempty"`
	ElasticInsulator  string `json:"elastic-insulator,omitempty" yaml:"elastic-insulator,omitempty"`
	Elastic1Conductor string `json:"elastic1-conductor,omitempty" yaml:"elastic1-conductor,omitempty"`
	Elastic1Insulator string `json:"elastic1-insulator,omitempty" yaml:"elastic1-insulator,omitempty"`
	Elastic2Conductor string `json:"elastic2-conductor,omitempty" yaml:"elastic2-conductor,omitempty"`
	Elastic2Insulator string `json:"elastic2-insulator,omitempty" yaml:"elastic2-insulator,omitempty"`

	Stats       []string `json:"stats" yaml:"stats"`
	MaterialDef []string `json:"material_def" yaml:"material_def"`
}

// SlotPath is one (slot, path) pair of a descriptor.
type SlotPath struct {
	Slot string
	Path string
}

func (d *Descriptor) fields() []SlotPath {
	return []SlotPath{
		{SlotCfg, d.Cfg},
		{SlotModel, d.Model},
		{SlotConductor, d.Conductor},
		{SlotInsulator, d.Insulator},
		{SlotHeatConductor, d.HeatConductor},
		{SlotHeatInsulator, d.HeatInsulator},
		{SlotCooling, d.Cooling},
		{SlotRobin, d.Robin},
		{SlotFlux, d.Flux},
		{SlotMagneticConductor, d.MagneticConductor},
		{SlotMagneticInsulator, d.MagneticInsulator},
		{SlotElasticConductor, d.ElasticConductor},
		{SlotElasticInsulator, d.ElasticInsulator},
		{SlotElastic1Conductor, d.Elastic1Conductor},
		{SlotElastic1Insulator, d.Elastic1Insulator},
		{SlotElastic2Conductor, d.Elastic2Conductor},
		{SlotElastic2Insulator, d.Elastic2Insulator},
	}
}

// Slots returns the names of the populated single-path slots, in
// canonical order. The stats list is not included.
func (d *Descriptor) Slots() []string {
	var slots []string
	for _, f := range d.fields() {
		if f.Path != "" {
			slots = append(slots, f.Slot)
		}
	}
	return slots
}

// Get returns the path stored in a single-path slot.
func (d *Descriptor) Get(slot string) (string, bool) {
	for _, f := range d.fields() {
		if f.Slot == slot {
			return f.Path, f.Path != ""
		}
	}
	return "", false
}

// Paths flattens the descriptor: populated slots first, then one
// "stats" entry per statistics template.
func (d *Descriptor) Paths() []SlotPath {
	var out []SlotPath
	for _, f := range d.fields() {
		if f.Path != "" {
			out = append(out, f)
		}
	}
	for _, s := range d.Stats {
		out = append(out, SlotPath{Slot: SlotStats, Path: s})
	}
	return out
}

// Set stores path in a single-path slot. It reports false for an unknown slot.
func (d *Descriptor) Set(slot, path string) bool {
	dst := map[string]*string{
		SlotCfg:               &d.Cfg,
		SlotModel:             &d.Model,
		SlotConductor:         &d.Conductor,
		SlotInsulator:         &d.Insulator,
		SlotHeatConductor:     &d.HeatConductor,
		SlotHeatInsulator:     &d.HeatInsulator,
		SlotCooling:           &d.Cooling,
		SlotRobin:             &d.Robin,
		SlotFlux:              &d.Flux,
		SlotMagneticConductor: &d.MagneticConductor,
		SlotMagneticInsulator: &d.MagneticInsulator,
		SlotElasticConductor:  &d.ElasticConductor,
		SlotElasticInsulator:  &d.ElasticInsulator,
		SlotElastic1Conductor: &d.Elastic1Conductor,
		SlotElastic1Insulator: &d.Elastic1Insulator,
		SlotElastic2Conductor: &d.Elastic2Conductor,
		SlotElastic2Insulator: &d.Elastic2Insulator,
	}[slot]
	if dst == nil {
		return false
	}
	*dst = path
	return true
}
