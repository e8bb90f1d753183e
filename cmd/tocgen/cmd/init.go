package cmd

import (
	"path/filepath"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/tocgen/configs"
	"github.com/Aman-CERP/tocgen/internal/config"
	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
	"github.com/Aman-CERP/tocgen/internal/output"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .tocgen.yaml config in the docs directory",
		Long: `Write a commented .tocgen.yaml holding the default settings into the docs
directory (--dir). An existing config is only replaced with --force, and
is backed up first.`,
		Example: `  # Create .tocgen.yaml in the current directory
  tocgen init

  # Replace an existing config, keeping a timestamped backup
  tocgen init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts.dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	out := output.New(cmd.OutOrStdout())
	path := filepath.Join(dir, config.ProjectConfigName)
	data := []byte(configs.ProjectConfigTemplate)

	// The template must parse on its own; a broken one is a build defect.
	if _, err := config.Parse(data); err != nil {
		return tocerrors.InternalError("embedded config template is invalid", err)
	}

	if existing := config.FindProjectConfig(dir); existing != "" {
		if !force {
			return tocerrors.New(tocerrors.ErrCodeConfigExists, "config already exists: "+existing, nil).
				WithSuggestion("Use --force to overwrite it")
		}
		backup, err := config.BackupFile(existing)
		if err != nil {
			return tocerrors.IOError(tocerrors.ErrCodeWriteFailed, "failed to back up "+existing, err)
		}
		out.Statusf("📦", "Backed up %s to %s", existing, backup)
		path = existing
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return tocerrors.IOError(tocerrors.ErrCodeWriteFailed, "failed to write "+path, err).
			WithDetail("path", path)
	}

	out.Successf("Created %s", path)
	return nil
}
