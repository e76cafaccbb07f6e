package setup

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for setup resolution.
var (
	// ErrConfigurationMissing indicates a required environment key is unset.
	ErrConfigurationMissing = errors.New("setup: required configuration missing")

	// ErrCatalogLookup indicates a selection or facet is absent from the catalog.
	ErrCatalogLookup = errors.New("setup: catalog lookup failed")

	// ErrTemplateFileMissing indicates a resolved template cannot be opened.
	ErrTemplateFileMissing = errors.New("setup: template file missing")

	// ErrUnknownServer indicates a machine registry miss.
	ErrUnknownServer = errors.New("setup: unknown server")
)

// ConfigurationMissingError names the environment key that was required but unset.
type ConfigurationMissingError struct {
	Key string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("%s: %s is not set", ErrConfigurationMissing, e.Key)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return ErrConfigurationMissing
}

// CatalogLookupError carries the key path that was walked and the key
// that could not be found under it.
type CatalogLookupError struct {
	Path []string
	Key  string
}

func (e *CatalogLookupError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: no key %q", ErrCatalogLookup, e.Key)
	}
	return fmt.Sprintf("%s: no key %q under %s", ErrCatalogLookup, e.Key, strings.Join(e.Path, "/"))
}

func (e *CatalogLookupError) Unwrap() error {
	return ErrCatalogLookup
}

// TemplateFileMissingError reports the descriptor slot whose file failed
// the existence check.
type TemplateFileMissingError struct {
	Slot string
	Path string
	Err  error
}

func (e *TemplateFileMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: slot %s: %s: %v", ErrTemplateFileMissing, e.Slot, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: slot %s: %s", ErrTemplateFileMissing, e.Slot, e.Path)
}

// Unwrap exposes both the sentinel and the underlying I/O error.
func (e *TemplateFileMissingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTemplateFileMissing}
	}
	return []error{ErrTemplateFileMissing, e.Err}
}

// UnknownServerError names the server that has no registry entry.
type UnknownServerError struct {
	Name string
}

func (e *UnknownServerError) Error() string {
	return fmt.Sprintf("%s: %s no such server defined", ErrUnknownServer, e.Name)
}

func (e *UnknownServerError) Unwrap() error {
	return ErrUnknownServer
}
