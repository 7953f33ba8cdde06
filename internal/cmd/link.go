package cmd

import (
	"fmt"

	"github.com/robert-malhotra/go-tdms/internal/config"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <file>",
	Short: "Print a notebook download link for a file",
	Long: `Link prints an HTML anchor that downloads the file from the notebook
server. Files under the working directory link by relative path, others by
file name. Outside a notebook kernel the command fails unless --force is
given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

var (
	linkText  string
	linkForce bool
)

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringVar(&linkText, "text", "", "link text (default \"⬇️ Download <name>\")")
	linkCmd.Flags().BoolVar(&linkForce, "force", false, "render even outside a notebook kernel")
}

func runLink(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	link, err := newRenderer(cfg.Notebook, linkForce).DownloadLink(args[0], linkText)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}
