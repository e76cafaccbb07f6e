package templates

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/magsetup/internal/setup"
)

// Check opens every file of d for reading. The first failure is returned
// as a TemplateFileMissingError naming the slot and the path.
func Check(d *setup.Descriptor, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for _, p := range d.Paths() {
		log.Debug("checking template", "slot", p.Slot, "path", p.Path)
		if err := readable(p.Path); err != nil {
			return &setup.TemplateFileMissingError{Slot: p.Slot, Path: p.Path, Err: err}
		}
	}
	return nil
}

func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	return nil
}
