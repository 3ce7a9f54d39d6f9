package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtxt/internal/app"
)

type exportOptions struct {
	Format string
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a parsed requirements file as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Report format: yaml or json")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Report output path (default stdout)")
	_ = viper.BindPFlag("export_format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export_output", cmd.Flags().Lookup("output"))
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, path string, opts exportOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Export(ctx, app.ExportRequest{
		Path:   path,
		Format: resolveString(cmd, opts.Format, "export_format", "format"),
		Output: resolveString(cmd, opts.Output, "export_output", "output"),
	})
	if err != nil {
		return err
	}
	if result.OutputPath != "" {
		fmt.Printf("report written to %s\n", result.OutputPath)
		return nil
	}
	fmt.Print(string(result.Data))
	return nil
}
