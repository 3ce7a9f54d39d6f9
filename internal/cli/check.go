package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtxt/internal/app"
)

const defaultRequirementsFile = "requirements.txt"

type checkOptions struct {
	Requirements []string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse requirements files and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Requirements, "requirement", nil, "Requirements file paths")
	_ = viper.BindPFlag("requirements", cmd.Flags().Lookup("requirement"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, args []string, opts checkOptions) error {
	paths := args
	if len(paths) == 0 {
		paths = resolveStrings(cmd, opts.Requirements, "requirements", "requirement")
	}
	if len(paths) == 0 {
		paths = []string{defaultRequirementsFile}
	}

	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Check(ctx, app.CheckRequest{Paths: paths})
	if err != nil {
		return err
	}
	for _, file := range result.Files {
		fmt.Printf("%s: %d requirements, %d constraints, %d sources\n",
			file.Path, file.Requirements, file.Constraints, file.Sources)
		if file.HashesRequired {
			fmt.Println("  hash checking enabled")
		}
		for _, diagnostic := range file.Diagnostics {
			fmt.Printf("  %s: %s\n", diagnostic.Span, diagnostic.Message)
		}
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
