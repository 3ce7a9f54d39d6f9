package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtxt/internal/app"
)

type listOptions struct {
	Constraints bool
	Editable    bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List requirement lines from a parsed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Constraints, "constraints", false, "List constraints instead of requirements")
	cmd.Flags().BoolVar(&opts.Editable, "editable", false, "List only editable requirements")
	_ = viper.BindPFlag("list_constraints", cmd.Flags().Lookup("constraints"))
	_ = viper.BindPFlag("list_editable", cmd.Flags().Lookup("editable"))
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, path string, opts listOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.List(ctx, app.ListRequest{
		Path:         path,
		Constraints:  resolveBool(cmd, opts.Constraints, "list_constraints", "constraints"),
		EditableOnly: resolveBool(cmd, opts.Editable, "list_editable", "editable"),
	})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Println(entry.Text)
	}
	return nil
}
