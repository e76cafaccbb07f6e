package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/magsetup/internal/catalog"
	"github.com/san-kum/magsetup/internal/config"
	"github.com/san-kum/magsetup/internal/logging"
	"github.com/san-kum/magsetup/internal/machine"
	"github.com/san-kum/magsetup/internal/setup"
	"github.com/san-kum/magsetup/internal/storage"
	"github.com/san-kum/magsetup/internal/templates"
	"github.com/san-kum/magsetup/internal/viz"
)

var (
	envFile      string
	catalogFile  string
	machinesFile string
	dataDir      string
	debug        bool

	method    string
	timeMode  string
	geom      string
	model     string
	cooling   string
	nonlinear bool
	units     string

	preset        string
	selectionFile string
	noCheck       bool
	save          bool
	format        string

	log *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "magsetup",
		Short: "select simulation templates for magnet setups",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.New(logging.Level(debug))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.DefaultEnvFile, "settings file")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (default: built-in magnetsetup.json)")
	rootCmd.PersistentFlags().StringVar(&machinesFile, "machines", "", "machine registry (default: machines.json next to the settings file)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".magsetup", "directory for saved resolutions")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list supported methods",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models for a method, geometry and time regime",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}
	modelsCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "method")
	modelsCmd.Flags().StringVar(&geom, "geom", config.DefaultGeometry, "geometry")
	modelsCmd.Flags().StringVar(&timeMode, "time", config.DefaultTime, "time regime")

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "resolve and check the templates of a selection",
		Args:  cobra.NoArgs,
		RunE:  resolveSelection,
	}
	addSelectionFlags(resolveCmd)

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "choose a selection interactively and resolve it",
		Args:  cobra.NoArgs,
		RunE:  pickSelection,
	}
	pickCmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the template existence check")
	pickCmd.Flags().BoolVar(&save, "save", false, "save the resolution")
	pickCmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")

	machineCmd := &cobra.Command{
		Use:   "machine [server]",
		Short: "show a server definition",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMachine,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tSELECTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Selection())
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved resolutions",
		Args:  cobra.NoArgs,
		RunE:  listRecords,
	}

	showCmd := &cobra.Command{
		Use:   "show [record_id]",
		Short: "show a saved resolution",
		Args:  cobra.ExactArgs(1),
		RunE:  showRecord,
	}
	showCmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "show the environment and check required keys",
		Args:  cobra.NoArgs,
		RunE:  showEnv,
	}

	rootCmd.AddCommand(methodsCmd, modelsCmd, resolveCmd, pickCmd, machineCmd, presetsCmd, listCmd, showCmd, envCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "method")
	cmd.Flags().StringVar(&timeMode, "time", config.DefaultTime, "time regime")
	cmd.Flags().StringVar(&geom, "geom", config.DefaultGeometry, "geometry")
	cmd.Flags().StringVar(&model, "model", config.DefaultModel, "physical model")
	cmd.Flags().StringVar(&cooling, "cooling", config.DefaultCooling, "cooling mode")
	cmd.Flags().BoolVar(&nonlinear, "nonlinear", false, "use nonlinear material models")
	cmd.Flags().StringVar(&units, "units", config.DefaultUnits, "length units")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset selection")
	cmd.Flags().StringVar(&selectionFile, "selection", "", "selection file (yaml)")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the template existence check")
	cmd.Flags().BoolVar(&save, "save", false, "save the resolution")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogFile != "" {
		return catalog.LoadFile(catalogFile)
	}
	return catalog.Load()
}

func loadEnv() (*config.Env, error) {
	return config.LoadEnv(envFile, log)
}

func machinesPath() string {
	if machinesFile != "" {
		return machinesFile
	}
	return filepath.Join(filepath.Dir(envFile), machine.DefaultFile)
}

func listMethods(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderList("methods", catalog.SupportedMethods(cat)))
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	title := fmt.Sprintf("models for %s/%s/%s", method, timeMode, geom)
	fmt.Print(viz.RenderList(title, catalog.SupportedModels(cat, method, geom, timeMode)))
	return nil
}

// selectionFromFlags applies preset, then selection file, then explicit flags.
func selectionFromFlags(cmd *cobra.Command) (setup.Selection, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return setup.Selection{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if selectionFile != "" {
		loaded, err := config.Load(selectionFile)
		if err != nil {
			return setup.Selection{}, fmt.Errorf("failed to load selection: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	base := preset == "" && selectionFile == ""
	use := func(name string) bool { return base || flags.Changed(name) }
	if use("method") {
		cfg.Method = method
	}
	if use("time") {
		cfg.Time = timeMode
	}
	if use("geom") {
		cfg.Geometry = geom
	}
	if use("model") {
		cfg.Model = model
	}
	if use("cooling") {
		cfg.Cooling = cooling
	}
	if use("nonlinear") {
		cfg.Linear = !nonlinear
	}
	if use("units") {
		cfg.Units = units
	}

	sel := cfg.Selection()
	return sel, sel.Validate()
}

func resolveSelection(cmd *cobra.Command, args []string) error {
	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}
	return resolveAndReport(sel)
}

func pickSelection(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	sel, err := viz.Pick(cat)
	if err != nil {
		return err
	}
	sel.Units = config.DefaultUnits
	return resolveAndReport(sel)
}

func resolveAndReport(sel setup.Selection) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	env, err := loadEnv()
	if err != nil {
		return err
	}

	opts := []templates.Option{templates.WithLogger(log)}
	if noCheck {
		opts = append(opts, templates.WithoutCheck())
	}
	d, err := templates.Resolve(env, cat, sel, opts...)
	if err != nil {
		return err
	}

	if err := printDescriptor(sel, d); err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(sel, d)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "record id: %s\n", id)
	}
	return nil
}

func printDescriptor(sel setup.Selection, d *setup.Descriptor) error {
	if format == "text" {
		fmt.Print(viz.RenderDescriptor(sel, d))
		return nil
	}
	return storage.Export(os.Stdout, format, d)
}

func showMachine(cmd *cobra.Command, args []string) error {
	reg, err := machine.Load(machinesPath())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Print(viz.RenderList("servers", reg.Names()))
		return nil
	}

	m, err := reg.Machine(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s\n", m.Name)
	fmt.Fprintf(w, "type\t%s\n", m.Type)
	fmt.Fprintf(w, "dns\t%s\n", m.Dns)
	fmt.Fprintf(w, "cores\t%d\n", m.Cores)
	fmt.Fprintf(w, "multithreading\t%v\n", m.Multithreading)
	fmt.Fprintf(w, "smp\t%v\n", m.Smp)
	for k, v := range m.Extra {
		fmt.Fprintf(w, "%s\t%v\n", k, v)
	}
	return w.Flush()
}

func listRecords(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no saved resolutions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSELECTION\tTEMPLATES\tTIMESTAMP")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.Selection, r.Templates, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRecord(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	d, err := st.LoadDescriptor(args[0])
	if err != nil {
		return err
	}
	return printDescriptor(meta.Selection, d)
}

func showEnv(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kv := range []struct {
		key string
		get func() (string, error)
	}{
		{config.KeyAPIURL, env.APIURL},
		{config.KeyComputeServer, env.ComputeServer},
		{config.KeyVisuServer, env.VisuServer},
	} {
		val, err := kv.get()
		if err != nil {
			val = "(missing)"
		}
		fmt.Fprintf(w, "%s\t%s\n", kv.key, val)
	}
	fmt.Fprintf(w, "template repo\t%s\n", env.TemplatePath())
	fmt.Fprintf(w, "simage repo\t%s\n", env.SimagePath())
	fmt.Fprintf(w, "mesh repo\t%s\n", env.MeshRepo)
	if err := w.Flush(); err != nil {
		return err
	}
	return env.Validate()
}
