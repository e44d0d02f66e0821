package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"pipe-tools/utils"
	"time"
)

func (ctx *Context) newRootCommand() *cobra.Command {
	var workerName, password string

	root := &cobra.Command{
		Use:           "pipe-tools",
		Short:         "Pipeline tracking for projects, sequences, shots and versions",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if workerName == "" {
				return nil
			}

			if password == "" {
				var err error
				password, err = promptPassword()

				if err != nil {
					return err
				}
			}

			session, err := ctx.Authenticate(workerName, password)

			if err != nil {
				return err
			}

			ctx.Session = session
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&workerName, "worker", "w", os.Getenv("PIPE_TOOLS_WORKER"), "worker to act as")
	root.PersistentFlags().StringVar(&password, "password", "", "worker password (prompted for when omitted)")

	root.AddCommand(
		ctx.newSyncCommand(),
		ctx.newWatchCommand(),
		ctx.newTreeCommand(),
		ctx.newCopyCommand(),
		ctx.newSettingsCommand(),
		ctx.newProjectCommand(),
		ctx.newSequenceCommand(),
		ctx.newShotCommand(),
		ctx.newVersionCommand(),
		ctx.newWorkerCommand(),
	)

	return root
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", errors.New("a password is required, use --password")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Println()

	return string(password), err
}

func printSyncReport(report *SyncReport) {
	warningColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgHiRed)

	for _, warning := range report.Warnings {
		warningColor.Printf("  warning: %s\n", warning)
	}

	for _, syncErr := range report.Errors {
		errorColor.Printf("  error: %v\n", syncErr)
	}
}

func (ctx *Context) newSyncCommand() *cobra.Command {
	var rootPath string

	command := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the project folder tree into the database",
		Long: `Walks <root>/<project>/<sequence>/<shot> and creates any missing rows.
Folders named vNNN are imported as versions owned by the "system" worker.
Rows are never deleted. The root defaults to the project_root setting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := ctx.Synchronize(rootPath)

			if err != nil {
				return err
			}

			printSyncReport(report)

			if !report.Succeeded() {
				return fmt.Errorf("synchronisation finished with %s", utils.Pluralize("error", int64(len(report.Errors))))
			}

			return nil
		},
	}

	command.Flags().StringVar(&rootPath, "root", "", "folder to synchronise instead of project_root")
	return command
}

func (ctx *Context) newWatchCommand() *cobra.Command {
	var rootPath string

	command := &cobra.Command{
		Use:   "watch",
		Short: "Synchronise again whenever the project folder tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			utils.ConsoleAndLogPrintf("Watching for changes, press Ctrl+C to stop")

			return ctx.Watch(runCtx, rootPath, func(report *SyncReport, err error) {
				if err != nil {
					utils.ConsoleAndLogPrintf("Error: %v", err)
					return
				}

				printSyncReport(report)
			})
		},
	}

	command.Flags().StringVar(&rootPath, "root", "", "folder to watch instead of project_root")
	return command
}

func (ctx *Context) newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show every project with its sequences, shots and latest versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := ctx.ProjectOverviews()

			if err != nil {
				return err
			}

			if len(projects) == 0 {
				utils.ConsoleAndLogPrintf("No projects yet. Have you synchronised?")
				return nil
			}

			dimColor := color.New(color.FgHiBlack)

			for _, project := range projects {
				utils.PrintFormattedTitle(project.Name)
				dimColor.Printf("%s, %s, %s\n", utils.Pluralize("sequence", project.SequenceCount),
					utils.Pluralize("shot", project.ShotCount), utils.Pluralize("version", project.VersionCount))

				shots, err := ctx.ShotOverviews(project.ProjectID)

				if err != nil {
					return err
				}

				previousSequence := ""

				for _, shot := range shots {
					if shot.SequenceName != previousSequence {
						fmt.Printf("  %s\n", shot.SequenceName)
						previousSequence = shot.SequenceName
					}

					if shot.ShotName == nil {
						continue
					}

					latest := "-"

					if shot.LatestVersion != nil {
						latest = FormatVersionFolder(*shot.LatestVersion)
					}

					status := ""

					if shot.Status != nil {
						status = *shot.Status
					}

					fmt.Printf("    %-20s %-12s %s\n", *shot.ShotName, status, latest)
				}

				fmt.Println()
			}

			return nil
		},
	}
}

func (ctx *Context) newCopyCommand() *cobra.Command {
	var overwrite bool

	command := &cobra.Command{
		Use:   "copy <source>... <destination folder>",
		Short: "Copy files or folders to a (network) destination",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := args[len(args)-1]
			requests, err := buildCopyRequests(args[:len(args)-1], destination, overwrite)

			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			startTime := time.Now()
			results := ctx.CopyFiles(runCtx, requests)

			var errs []error

			for _, result := range results {
				if result.Err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", result.Request.Source, result.Err))
				}
			}

			utils.ConsoleAndLogPrintf("Finished in %s", utils.FormatDuration(time.Since(startTime)))

			return errors.Join(errs...)
		},
	}

	command.Flags().BoolVar(&overwrite, "overwrite", false, "replace destination files with different contents")
	return command
}

// buildCopyRequests expands folders into their files, keeping paths relative to each source.
func buildCopyRequests(sources []string, destination string, overwrite bool) ([]CopyRequest, error) {
	var requests []CopyRequest

	for _, source := range sources {
		absoluteSource, err := filepath.Abs(source)

		if err != nil {
			return nil, err
		}

		if IsFile(absoluteSource) {
			requests = append(requests, CopyRequest{
				Source:      absoluteSource,
				Destination: filepath.Join(destination, filepath.Base(absoluteSource)),
				Overwrite:   overwrite,
			})

			continue
		}

		if !IsDir(absoluteSource) {
			return nil, fmt.Errorf("%w: \"%s\"", ErrCouldNotResolvePath, source)
		}

		base := filepath.Base(absoluteSource)

		err = filepath.WalkDir(absoluteSource, func(thisPath string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			relativePath, err := filepath.Rel(absoluteSource, thisPath)

			if err != nil {
				return err
			}

			requests = append(requests, CopyRequest{
				Source:      thisPath,
				Destination: filepath.Join(destination, base, relativePath),
				Overwrite:   overwrite,
			})

			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return requests, nil
}
