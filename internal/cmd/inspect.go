package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/robert-malhotra/go-tdms/tdms"
	"github.com/spf13/cobra"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	objectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.tdms>",
	Short: "Show the groups, channels and properties of a TDMS file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var inspectSegments bool

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectSegments, "segments", false, "list every segment")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := tdms.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	w := cmd.OutOrStdout()
	segs := f.Segments()
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("=== %s ===", args[0])))
	fmt.Fprintf(w, "Segments: %d\n", len(segs))
	for _, s := range segs {
		if s.Incomplete {
			fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("Segment at %d is incomplete", s.Offset)))
		}
	}
	if inspectSegments {
		for i, s := range segs {
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  #%d offset=%d version=%d toc=%s objects=%d meta=%d raw=%d chunks=%d",
				i+1, s.Offset, s.Version, s.Flags, s.Objects, s.MetaSize, s.RawSize, s.Chunks)))
		}
	}
	fmt.Fprintln(w)

	return tdms.Walk(f, func(path string, obj any) error {
		switch o := obj.(type) {
		case *tdms.File:
			fmt.Fprintln(w, objectStyle.Render("File"))
			printProperties(w, "  ", o.Properties())
		case *tdms.Group:
			fmt.Fprintln(w, objectStyle.Render(fmt.Sprintf("Group %q", o.Name())))
			printProperties(w, "  ", o.Properties())
		case *tdms.Channel:
			fmt.Fprintln(w, objectStyle.Render(fmt.Sprintf("  Channel %q", o.Name())))
			fmt.Fprintf(w, "    Type: %v\n", o.DataType())
			fmt.Fprintf(w, "    Values: %d in %d appends\n", o.Len(), o.Appends())
			printProperties(w, "    ", o.Properties())
		}
		return nil
	})
}

func printProperties(w io.Writer, indent string, props map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(w, "%s%s %v\n", indent, mutedStyle.Render(k+":"), props[k])
	}
}
