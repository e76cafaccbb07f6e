package templates

import (
	"log/slog"
	"path/filepath"

	"github.com/san-kum/magsetup/internal/catalog"
	"github.com/san-kum/magsetup/internal/setup"
)

// Root provides the template repository root.
type Root interface {
	TemplatePath() string
}

type options struct {
	log   *slog.Logger
	check bool
}

type Option func(*options)

// WithLogger sends resolution diagnostics to log at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithoutCheck skips the existence check of the resolved files.
func WithoutCheck() Option {
	return func(o *options) { o.check = false }
}

// Dir returns the directory holding the templates of a selection.
func Dir(root Root, sel setup.Selection) string {
	return filepath.Join(root.TemplatePath(), sel.Method, sel.Geometry, sel.Model)
}

// Resolve builds the descriptor of sel from the catalog and checks that
// every file it names exists.
func Resolve(root Root, cat *catalog.Catalog, sel setup.Selection, opts ...Option) (*setup.Descriptor, error) {
	o := options{log: slog.New(slog.DiscardHandler), check: true}
	for _, opt := range opts {
		opt(&o)
	}

	node, err := cat.Lookup(sel)
	if err != nil {
		return nil, err
	}

	dir := Dir(root, sel)
	caps := setup.CapabilitiesOf(sel.Model)
	o.log.Debug("resolving templates", "selection", sel.String(), "dir", dir, "capabilities", caps)

	d, err := build(node, dir, sel, caps)
	if err != nil {
		return nil, err
	}

	if o.check {
		if err := Check(d, o.log); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func build(node *catalog.ModelNode, dir string, sel setup.Selection, caps setup.Capabilities) (*setup.Descriptor, error) {
	var firstErr error
	join := func(name string, err error) string {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return filepath.Join(dir, name)
	}
	entry := func(key, name string) (string, error) {
		if name == "" {
			return "", &setup.CatalogLookupError{Path: node.Path, Key: key}
		}
		return name, nil
	}

	model := node.Model
	conductor := node.ConductorLinear
	if !sel.Linear {
		conductor = node.ConductorNonlinear
		if sel.Geometry == setup.Geom3D {
			model = node.ModelNonlinear
		}
	}

	d := &setup.Descriptor{
		Cfg:         join(entry("cfg", node.Cfg)),
		Model:       join(entry(modelKey(sel), model)),
		Conductor:   join(entry(conductorKey(sel), conductor)),
		Insulator:   join(entry("insulator", node.Insulator)),
		Stats:       []string{},
		MaterialDef: setup.MaterialDef(sel.Time),
	}

	if caps.Thermal {
		d.HeatConductor = join(node.Facet("heat-conductor"))
		d.HeatInsulator = join(node.Facet("heat-insulator"))
		d.Cooling = join(node.CoolingFile(sel.Cooling))
		d.Robin = join(node.CoolingFile("robin"))
		d.Flux = join(node.FluxFile(sel.Cooling))
		d.Stats = append(d.Stats, join(entry("stats_T", node.StatsT)))
	}

	if caps.Magnetic {
		d.MagneticConductor = join(node.Facet("magnetic-conductor"))
		d.MagneticInsulator = join(node.Facet("magnetic-insulator"))
	}

	if caps.ElasticSingle {
		d.ElasticConductor = join(node.Facet("elastic-conductor"))
		d.ElasticInsulator = join(node.Facet("elastic-insulator"))
	}

	if caps.ElasticDual {
		d.Elastic1Conductor = join(node.Facet("elastic1-conductor"))
		d.Elastic1Insulator = join(node.Facet("elastic1-insulator"))
		d.Elastic2Conductor = join(node.Facet("elastic2-conductor"))
		d.Elastic2Insulator = join(node.Facet("elastic2-insulator"))
	}

	d.Stats = append(d.Stats,
		join(entry("stats_Power", node.StatsPower)),
		join(entry("stats_Current", node.StatsCurrent)),
	)

	if firstErr != nil {
		return nil, firstErr
	}
	return d, nil
}

func modelKey(sel setup.Selection) string {
	if !sel.Linear && sel.Geometry == setup.Geom3D {
		return "model-nonlinear"
	}
	return "model"
}

func conductorKey(sel setup.Selection) string {
	if sel.Linear {
		return "conductor-linear"
	}
	return "conductor-nonlinear"
}
