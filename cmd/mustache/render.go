package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davorinm/mustache/pkg/logging"
	"github.com/davorinm/mustache/pkg/mustache"
	"github.com/davorinm/mustache/pkg/mustache/mapmodel"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputPath    string
	strictMode    bool
	allowEmptyTag bool
	partialFiles  []string

	renderCmd = &cobra.Command{
		Use:   "render <template> [data-file]",
		Short: "Render a template with data",
		Long: `Render reads a mustache template file and renders it against the data
file, written to stdout or --output. The data file format is chosen by
extension: .json, .yaml, .yml or .toml. Without a data file the
template is rendered against an empty data set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data any
			if len(args) == 2 {
				var err error
				data, err = loadData(args[1])
				if err != nil {
					return err
				}
			}

			model := mapmodel.New(data)
			model.Strict = strictMode
			for _, path := range partialFiles {
				text, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read partial: %w", err)
				}
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				model.AddPartial(name, string(text))
			}

			logger := logging.WithFields(map[string]interface{}{
				"template": args[0],
				"strict":   strictMode,
				"partials": len(partialFiles),
			})
			logger.Debug().Msg("Rendering template")

			var out io.Writer = os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			engine := mustache.NewWithConfig(&mustache.Config{
				AllowEmptyTag: allowEmptyTag,
			})
			return engine.RenderTemplateFile(args[0], model, out)
		},
	}
)

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to a file instead of stdout")
	renderCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on missing names and partials")
	renderCmd.Flags().BoolVar(&allowEmptyTag, "allow-empty-tag", false, "Permit tags with empty names")
	renderCmd.Flags().StringArrayVarP(&partialFiles, "partial", "p", nil, "Partial template file, usable as {{>basename}} (repeatable)")
}

// loadData decodes a data file by extension.
func loadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	case ".toml":
		err = toml.Unmarshal(raw, &data)
	default:
		return nil, fmt.Errorf("unsupported data file format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return data, nil
}
