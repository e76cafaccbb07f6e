package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/san-kum/magsetup/internal/setup"
)

// Environment keys read from the settings file.
const (
	KeyAPIURL        = "URL_API"
	KeyComputeServer = "COMPUTE_SERVER"
	KeyVisuServer    = "VISU_SERVER"
	KeyTemplateRepo  = "TEMPLATE_REPO"
	KeySimageRepo    = "SIMAGE_REPO"
	KeyDataRepo      = "DATA_REPO"
)

const (
	DefaultEnvFile    = "settings.env"
	DefaultSimageRepo = "/home/singularity"
)

// Env is the process configuration read from settings.env. It is
// immutable once built; share it instead of re-reading the file.
type Env struct {
	apiURL        string
	computeServer string
	visuServer    string

	templateRepo string
	simageRepo   string

	YamlRepo    string
	CadRepo     string
	MeshRepo    string
	MrecordRepo string
	OptimRepo   string

	log *slog.Logger
}

// LoadEnv reads a settings file. Absent keys are left empty; the required
// ones are only reported when they are first asked for.
func LoadEnv(path string, log *slog.Logger) (*Env, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewEnv(values, log), nil
}

// NewEnv builds an Env from already parsed key/value pairs.
func NewEnv(values map[string]string, log *slog.Logger) *Env {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	log.Debug("appenv", "keys", keys)

	e := &Env{
		apiURL:        values[KeyAPIURL],
		computeServer: values[KeyComputeServer],
		visuServer:    values[KeyVisuServer],
		templateRepo:  values[KeyTemplateRepo],
		simageRepo:    values[KeySimageRepo],
		log:           log,
	}
	if data, ok := values[KeyDataRepo]; ok {
		e.YamlRepo = data + "/geometries"
		e.CadRepo = data + "/cad"
		e.MeshRepo = data + "/meshes"
		e.MrecordRepo = data + "/mrecords"
		e.OptimRepo = data + "/optims"
	}
	log.Debug("appenv data", "geometries", e.YamlRepo)
	return e
}

func (e *Env) APIURL() (string, error) {
	return required(KeyAPIURL, e.apiURL)
}

func (e *Env) ComputeServer() (string, error) {
	return required(KeyComputeServer, e.computeServer)
}

func (e *Env) VisuServer() (string, error) {
	return required(KeyVisuServer, e.visuServer)
}

func required(key, val string) (string, error) {
	if val == "" {
		return "", &setup.ConfigurationMissingError{Key: key}
	}
	return val, nil
}

// Validate reports every required key that is unset.
func (e *Env) Validate() error {
	var errs []error
	for _, kv := range [][2]string{
		{KeyAPIURL, e.apiURL},
		{KeyComputeServer, e.computeServer},
		{KeyVisuServer, e.visuServer},
	} {
		if _, err := required(kv[0], kv[1]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TemplatePath is the root of the template repository: TEMPLATE_REPO, or
// the templates directory installed next to the executable.
func (e *Env) TemplatePath() string {
	repo := e.templateRepo
	if repo == "" {
		repo = filepath.Join(installDir(), "templates")
	}
	e.log.Debug("appenv/template_path", "repo", repo)
	return repo
}

// SimagePath is the root of the simulation image repository.
func (e *Env) SimagePath() string {
	repo := e.simageRepo
	if repo == "" {
		repo = DefaultSimageRepo
	}
	e.log.Debug("appenv/simage_path", "repo", repo)
	return repo
}

func installDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
