package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-tdms/capture"
	"github.com/robert-malhotra/go-tdms/internal/config"
	"github.com/robert-malhotra/go-tdms/internal/logging"
	"github.com/robert-malhotra/go-tdms/notebook"
	"github.com/robert-malhotra/go-tdms/tdms"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Export a capture to a TDMS file",
	Long: `Write reads raw little-endian sample dumps and exports them into one
TDMS group. The input capture is split across segments of --chunk samples;
the optional output waveform is stored once in the first segment.

Examples:
  # Export an int16 ADC dump sampled at 4.9152 GS/s
  capexport write --in adc.bin --fs-in 4.9152e9

  # Include the DAC waveform and extra metadata
  capexport write --in adc.bin --out dac.bin --fs-in 2.4576e9 --fs-out 4.9152e9 \
    --prop nco_mhz=1250 --prop board=ZCU208 --props-file run.yaml

  # Print a notebook download link for the result
  capexport write --in adc.bin --fs-in 1e9 --link`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

var (
	writeIn        string
	writeOut       string
	writeFsIn      float64
	writeFsOut     float64
	writeProps     []string
	writePropsFile string
	writeLink      bool
)

func init() {
	rootCmd.AddCommand(writeCmd)

	f := writeCmd.Flags()
	f.StringVar(&writeIn, "in", "", "raw ADC capture file (required)")
	f.StringVar(&writeOut, "out", "", "raw DAC waveform file")
	f.Float64Var(&writeFsIn, "fs-in", 0, "ADC sample rate in Hz")
	f.Float64Var(&writeFsOut, "fs-out", 0, "DAC sample rate in Hz")
	f.StringArrayVar(&writeProps, "prop", nil, "extra group property key=value (repeatable)")
	f.StringVar(&writePropsFile, "props-file", "", "YAML file of extra group properties")
	f.BoolVar(&writeLink, "link", false, "print a notebook download link")

	f.String("in-dtype", "", "storage type of the input channel (default int16)")
	f.String("out-dtype", "", "storage type of the output channel (default int16)")
	f.String("dir", "", "output directory (default captures)")
	f.String("name", "", "output file name (default capture.tdms)")
	f.String("group", "", "group name (default p)")
	f.Int("chunk", 0, "input samples per segment (default derived from 16 MiB)")
	f.String("format", "", "container format (default tdms)")
	_ = writeCmd.MarkFlagRequired("in")

	for key, flag := range map[string]string{
		"export.in_dtype":      "in-dtype",
		"export.out_dtype":     "out-dtype",
		"export.directory":     "dir",
		"export.filename":      "name",
		"export.group":         "group",
		"export.chunk_samples": "chunk",
		"export.format":        "format",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Close()

	inType, err := tdms.ParseDataType(cfg.Export.InDType)
	if err != nil {
		return err
	}
	outType, err := tdms.ParseDataType(cfg.Export.OutDType)
	if err != nil {
		return err
	}

	props, err := extraProperties(writePropsFile, writeProps)
	if err != nil {
		return err
	}

	in, err := readCapture(writeIn)
	if err != nil {
		return err
	}
	var out capture.Source
	if writeOut != "" {
		if out, err = readCapture(writeOut); err != nil {
			return err
		}
	}

	if strings.EqualFold(cfg.Export.Format, "tdms") {
		capture.Register(capture.TDMSFormat{Options: tdmsOptions(cfg.Export)})
	}

	path, err := capture.Write(out, in, writeFsOut, writeFsIn,
		capture.WithFormat(cfg.Export.Format),
		capture.WithDirectory(cfg.Export.Directory),
		capture.WithFilename(cfg.Export.Filename),
		capture.WithGroup(cfg.Export.Group),
		capture.WithChannels(cfg.Export.OutChannel, cfg.Export.InChannel),
		capture.WithInType(inType),
		capture.WithOutType(outType),
		capture.WithChunkSamples(cfg.Export.ChunkSamples),
		capture.WithProperties(props),
		capture.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if writeLink {
		r := newRenderer(cfg.Notebook, false)
		link, err := r.DownloadLink(path, "")
		if errors.Is(err, notebook.ErrNoRichDisplay) {
			logger.Warn("no notebook kernel detected; skipping download link", "path", path)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}
	return nil
}

func readCapture(path string) (capture.Bytes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return capture.Reader(f)
}

func tdmsOptions(e config.ExportConfig) []tdms.WriterOption {
	opts := []tdms.WriterOption{tdms.WithVersion(uint32(e.Version))}
	if e.BigEndian {
		opts = append(opts, tdms.WithBigEndian())
	}
	return opts
}

// extraProperties merges the YAML properties file with key=value flags;
// flags win.
func extraProperties(file string, pairs []string) (map[string]any, error) {
	props := make(map[string]any)

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var raw map[any]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for k, v := range capture.StringKeyed(raw) {
			props[k] = v
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q: want key=value", pair)
		}
		props[key] = parseValue(value)
	}
	return props, nil
}

// parseValue types a flag value as int64, float64 or bool when it parses
// as one, else keeps the string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func newRenderer(cfg config.NotebookConfig, force bool) *notebook.Renderer {
	return &notebook.Renderer{
		Prefix: cfg.Prefix,
		Force:  force || cfg.Force,
	}
}
