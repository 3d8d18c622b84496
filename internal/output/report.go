package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rpgo/earnings-projector/internal/config"
	"github.com/rpgo/earnings-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes report in the named format to dir and returns the written paths.
// The format "all" writes every registered formatter.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range AvailableFormatterNames() {
			path, err := WriteFormatted(GetFormatterByName(name), report, dir, ExtensionFor(name))
			if err != nil {
				return paths, fmt.Errorf("write %s report: %w", name, err)
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, report, dir, ExtensionFor(format))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes config as TOML when filename ends in .toml and YAML otherwise.
func SaveConfiguration(cfg *config.Configuration, filename string) error {
	var (
		b   []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		b, err = toml.Marshal(cfg)
	} else {
		b, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
