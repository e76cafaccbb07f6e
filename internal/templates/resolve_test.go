package templates_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/magsetup/internal/catalog"
	"github.com/san-kum/magsetup/internal/config"
	"github.com/san-kum/magsetup/internal/setup"
	"github.com/san-kum/magsetup/internal/templates"
)

type root string

func (r root) TemplatePath() string { return string(r) }

// materialize creates every file the descriptor names.
func materialize(d *setup.Descriptor) {
	for _, p := range d.Paths() {
		Expect(os.MkdirAll(filepath.Dir(p.Path), 0755)).To(Succeed())
		Expect(os.WriteFile(p.Path, []byte("{}\n"), 0644)).To(Succeed())
	}
}

func expectedSlots(caps setup.Capabilities) []string {
	slots := []string{setup.SlotCfg, setup.SlotModel, setup.SlotConductor, setup.SlotInsulator}
	if caps.Thermal {
		slots = append(slots, setup.SlotHeatConductor, setup.SlotHeatInsulator, setup.SlotCooling, setup.SlotRobin, setup.SlotFlux)
	}
	if caps.Magnetic {
		slots = append(slots, setup.SlotMagneticConductor, setup.SlotMagneticInsulator)
	}
	if caps.ElasticSingle {
		slots = append(slots, setup.SlotElasticConductor, setup.SlotElasticInsulator)
	}
	if caps.ElasticDual {
		slots = append(slots, setup.SlotElastic1Conductor, setup.SlotElastic1Insulator, setup.SlotElastic2Conductor, setup.SlotElastic2Insulator)
	}
	return slots
}

var _ = Describe("Resolve", func() {
	var (
		cat *catalog.Catalog
		dir root
	)

	BeforeEach(func() {
		var err error
		cat, err = catalog.Load()
		Expect(err).NotTo(HaveOccurred())
		dir = root(GinkgoT().TempDir())
	})

	resolveAndMaterialize := func(sel setup.Selection) *setup.Descriptor {
		d, err := templates.Resolve(dir, cat, sel, templates.WithoutCheck())
		Expect(err).NotTo(HaveOccurred())
		materialize(d)
		return d
	}

	It("resolves every catalog entry to existing files with the slots its model implies", func() {
		for _, method := range catalog.SupportedMethods(cat) {
			for _, time := range catalog.SupportedTimes(cat, method) {
				for _, geom := range catalog.SupportedGeometries(cat, method, time) {
					for _, model := range catalog.SupportedModels(cat, method, geom, time) {
						for _, linear := range []bool{true, false} {
							sel := setup.Selection{Method: method, Time: time, Geometry: geom, Model: model, Cooling: "mean", Linear: linear}
							resolveAndMaterialize(sel)

							d, err := templates.Resolve(dir, cat, sel)
							Expect(err).NotTo(HaveOccurred(), sel.String())
							Expect(d.Slots()).To(Equal(expectedSlots(setup.CapabilitiesOf(model))), sel.String())
							for _, p := range d.Paths() {
								Expect(p.Path).To(BeARegularFile())
								Expect(filepath.Dir(p.Path)).To(Equal(filepath.Join(string(dir), method, geom, model)))
							}
						}
					}
				}
			}
		}
	})

	It("picks conductor and model files from the linearity switch", func() {
		sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "3D", Model: "thmag", Cooling: "grad", Linear: true}
		d, err := templates.Resolve(dir, cat, sel, templates.WithoutCheck())
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(d.Conductor)).To(Equal("conductor-linear.json"))
		Expect(filepath.Base(d.Model)).To(Equal("cfpdes-thmag-3D.json"))

		sel.Linear = false
		d, err = templates.Resolve(dir, cat, sel, templates.WithoutCheck())
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(d.Conductor)).To(Equal("conductor-nonlinear.json"))
		Expect(filepath.Base(d.Model)).To(Equal("cfpdes-thmag-3D-nonlinear.json"))

		sel.Geometry = "Axi"
		d, err = templates.Resolve(dir, cat, sel, templates.WithoutCheck())
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(d.Conductor)).To(Equal("conductor-nonlinear.json"))
		Expect(filepath.Base(d.Model)).To(Equal("cfpdes-thmag-Axi.json"))
	})

	It("includes both elastic stages and the magnetic pair for mqsel", func() {
		sel := setup.Selection{Method: "cfpdes", Time: "transient", Geometry: "Axi", Model: "mqsel", Linear: true}
		resolveAndMaterialize(sel)

		d, err := templates.Resolve(dir, cat, sel)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.MaterialDef).To(Equal([]string{"conductor", "insulator", "conduct-nosource"}))
		Expect(d.Slots()).To(ContainElements(
			setup.SlotElastic1Conductor, setup.SlotElastic1Insulator,
			setup.SlotElastic2Conductor, setup.SlotElastic2Insulator,
			setup.SlotMagneticConductor, setup.SlotMagneticInsulator,
		))
		Expect(d.Slots()).NotTo(ContainElement(setup.SlotElasticConductor))
		Expect(d.Slots()).NotTo(ContainElement(setup.SlotCooling))
		Expect(d.Stats).To(HaveLen(2))
	})

	It("takes the robin template from the robin entry whatever the cooling", func() {
		sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thelec", Cooling: "gradH", Linear: true}
		d, err := templates.Resolve(dir, cat, sel, templates.WithoutCheck())
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(d.Cooling)).To(Equal("cooling-gradH.json"))
		Expect(filepath.Base(d.Flux)).To(Equal("flux-gradH.json"))
		Expect(filepath.Base(d.Robin)).To(Equal("cooling-robin.json"))
		Expect(d.MaterialDef).To(Equal([]string{"conductor", "insulator"}))
		Expect(d.Stats).To(HaveLen(3))
		Expect(filepath.Base(d.Stats[0])).To(Equal("stats-T.json"))
		Expect(filepath.Base(d.Stats[1])).To(Equal("stats-Power.json"))
		Expect(filepath.Base(d.Stats[2])).To(Equal("stats-Current.json"))
	})

	It("is idempotent", func() {
		sel := setup.Selection{Method: "cfpdes", Time: "transient", Geometry: "Axi", Model: "thmqsel", Cooling: "mean", Linear: false}
		resolveAndMaterialize(sel)

		first, err := templates.Resolve(dir, cat, sel)
		Expect(err).NotTo(HaveOccurred())
		second, err := templates.Resolve(dir, cat, sel)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("uses the template root of the environment", func() {
		env := config.NewEnv(map[string]string{config.KeyTemplateRepo: string(dir)}, nil)
		sel := setup.Selection{Method: "CG", Time: "static", Geometry: "3D", Model: "thelec", Cooling: "mean", Linear: true}
		resolveAndMaterialize(sel)

		d, err := templates.Resolve(env, cat, sel)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Cfg).To(Equal(filepath.Join(string(dir), "CG", "3D", "thelec", "CG-thelec-3D-sim.cfg")))
		Expect(templates.Dir(env, sel)).To(Equal(filepath.Join(string(dir), "CG", "3D", "thelec")))
	})

	Context("when resolution fails", func() {
		It("reports the missing file with its slot and returns no descriptor", func() {
			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thmag", Cooling: "mean", Linear: true}
			full := resolveAndMaterialize(sel)
			Expect(os.Remove(full.MagneticInsulator)).To(Succeed())

			d, err := templates.Resolve(dir, cat, sel)
			Expect(d).To(BeNil())
			Expect(err).To(MatchError(setup.ErrTemplateFileMissing))

			var missing *setup.TemplateFileMissingError
			Expect(err).To(BeAssignableToTypeOf(missing))
			missing = err.(*setup.TemplateFileMissingError)
			Expect(missing.Slot).To(Equal(setup.SlotMagneticInsulator))
			Expect(missing.Path).To(Equal(full.MagneticInsulator))
			Expect(err.Error()).To(ContainSubstring(full.MagneticInsulator))
		})

		It("checks statistics templates too", func() {
			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "mag", Linear: true}
			full := resolveAndMaterialize(sel)
			Expect(os.Remove(full.Stats[1])).To(Succeed())

			_, err := templates.Resolve(dir, cat, sel)
			Expect(err).To(MatchError(setup.ErrTemplateFileMissing))
			Expect(err.(*setup.TemplateFileMissingError).Slot).To(Equal(setup.SlotStats))
		})

		It("rejects a directory in place of a template", func() {
			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "mag", Linear: true}
			full := resolveAndMaterialize(sel)
			Expect(os.Remove(full.Cfg)).To(Succeed())
			Expect(os.Mkdir(full.Cfg, 0755)).To(Succeed())

			_, err := templates.Resolve(dir, cat, sel)
			Expect(err).To(MatchError(setup.ErrTemplateFileMissing))
		})

		It("reports a selection absent from the catalog", func() {
			sel := setup.Selection{Method: "cfpdes", Time: "transient", Geometry: "3D", Model: "mqs", Linear: true}
			d, err := templates.Resolve(dir, cat, sel)
			Expect(d).To(BeNil())
			Expect(err).To(MatchError(setup.ErrCatalogLookup))
			Expect(err.Error()).To(ContainSubstring(`"3D" under cfpdes/transient`))
		})

		It("reports an unknown cooling key", func() {
			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thelec", Cooling: "turbulent", Linear: true}
			_, err := templates.Resolve(dir, cat, sel, templates.WithoutCheck())
			Expect(err).To(MatchError(setup.ErrCatalogLookup))
			Expect(err.Error()).To(ContainSubstring("turbulent"))
		})

		It("treats a missing facet as a malformed catalog", func() {
			doc := `{"cfpdes": {"static": {"Axi": {"thelec": {
				"cfg": "a.cfg", "model": "a.json", "conductor-linear": "cl.json",
				"conductor-nonlinear": "cn.json", "insulator": "i.json",
				"models": {"heat-conductor": "hc.json"},
				"cooling": {"robin": "r.json", "mean": "m.json"},
				"cooling-post": {"mean": "f.json"},
				"stats_T": "t.json", "stats_Power": "p.json", "stats_Current": "c.json"}}}}}`
			custom, err := catalog.Parse([]byte(doc))
			Expect(err).NotTo(HaveOccurred())

			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thelec", Cooling: "mean", Linear: true}
			_, err = templates.Resolve(dir, custom, sel, templates.WithoutCheck())
			var lookup *setup.CatalogLookupError
			Expect(err).To(BeAssignableToTypeOf(lookup))
			lookup = err.(*setup.CatalogLookupError)
			Expect(lookup.Key).To(Equal("heat-insulator"))
			Expect(lookup.Path).To(Equal([]string{"cfpdes", "static", "Axi", "thelec", "models"}))
		})

		It("requires model-nonlinear for nonlinear 3D setups", func() {
			doc := `{"cfpdes": {"static": {"3D": {"mag": {
				"cfg": "a.cfg", "model": "a.json", "conductor-linear": "cl.json",
				"conductor-nonlinear": "cn.json", "insulator": "i.json",
				"models": {"magnetic-conductor": "mc.json", "magnetic-insulator": "mi.json"},
				"stats_Power": "p.json", "stats_Current": "c.json"}}}}}`
			custom, err := catalog.Parse([]byte(doc))
			Expect(err).NotTo(HaveOccurred())

			sel := setup.Selection{Method: "cfpdes", Time: "static", Geometry: "3D", Model: "mag", Linear: false}
			_, err = templates.Resolve(dir, custom, sel, templates.WithoutCheck())
			Expect(err).To(MatchError(setup.ErrCatalogLookup))
			Expect(err.Error()).To(ContainSubstring("model-nonlinear"))

			sel.Linear = true
			_, err = templates.Resolve(dir, custom, sel, templates.WithoutCheck())
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
