package main

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"pipe-tools/models"
	"pipe-tools/utils"
	"strconv"
	"strings"
)

const timeFormat = "2006-01-02 15:04"

func (ctx *Context) newSettingsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "settings",
		Short: "Show or change shared settings such as project_root",
	}

	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ctx.ListSettings()

			if err != nil {
				return err
			}

			for _, entry := range entries {
				value := entry.Value

				if entry.Secret && value != "" {
					value = "********"
				}

				fmt.Printf("%-16s %s\n", entry.Key, value)
			}

			return nil
		},
	}, &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := ctx.GetSetting(args[0])

			if err != nil {
				return err
			}

			fmt.Println(value)
			return nil
		},
	}, &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == SettingProjectRoot {
				return ctx.SetProjectRoot(args[1])
			}

			return ctx.SetSetting(args[0], args[1])
		},
	})

	return command
}

func (ctx *Context) newProjectCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var path, description string

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := ctx.CreateProject(args[0], path, description)

			if err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Created project \"%s\"", project.Name)
			return nil
		},
	}

	add.Flags().StringVar(&path, "path", "", "project folder")
	add.Flags().StringVar(&description, "description", "", "description")

	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overviews, err := ctx.ProjectOverviews()

			if err != nil {
				return err
			}

			for _, overview := range overviews {
				fmt.Printf("%-24s %4d seq %5d shots %6d versions  %s\n",
					overview.Name, overview.SequenceCount, overview.ShotCount, overview.VersionCount, overview.Path)
			}

			return nil
		},
	}, add, &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project with all of its sequences, shots and versions (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.DeleteProject(args[0]); err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Deleted project \"%s\"", args[0])
			return nil
		},
	})

	return command
}

func (ctx *Context) newSequenceCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "sequence",
		Short: "Manage sequences",
	}

	var description string

	add := &cobra.Command{
		Use:   "add <project> <name>",
		Short: "Create a sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sequence, err := ctx.CreateSequence(args[0], args[1], description)

			if err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Created sequence \"%s\" in \"%s\"", sequence.Name, args[0])
			return nil
		},
	}

	add.Flags().StringVar(&description, "description", "", "description")

	command.AddCommand(add, &cobra.Command{
		Use:   "list <project>",
		Short: "List the sequences of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sequences, err := ctx.ListSequences(args[0])

			if err != nil {
				return err
			}

			for _, sequence := range sequences {
				fmt.Printf("%-24s %s\n", sequence.Name, sequence.CreatedAt.Format(timeFormat))
			}

			return nil
		},
	})

	return command
}

func (ctx *Context) newShotCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "shot",
		Short: "Manage shots",
	}

	var description string

	add := &cobra.Command{
		Use:   "add <project> <sequence> <name>",
		Short: "Create a shot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shot, err := ctx.CreateShot(args[0], args[1], args[2], description)

			if err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Created shot \"%s\" in \"%s/%s\"", shot.Name, args[0], args[1])
			return nil
		},
	}

	add.Flags().StringVar(&description, "description", "", "description")

	command.AddCommand(add, &cobra.Command{
		Use:   "list <project> <sequence>",
		Short: "List the shots of a sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shots, err := ctx.ListShots(args[0], args[1])

			if err != nil {
				return err
			}

			for _, shot := range shots {
				fmt.Printf("%-24s %-12s %s\n", shot.Name, shot.Status, shot.CreatedAt.Format(timeFormat))
			}

			return nil
		},
	}, &cobra.Command{
		Use:   "status <project> <sequence> <shot> <status>",
		Short: "Set a shot status: " + strings.Join(models.ShotStatuses, ", "),
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.SetShotStatus(args[0], args[1], args[2], args[3])
		},
	})

	return command
}

type parentFlags struct {
	project  string
	sequence string
	shot     string
}

func (flags *parentFlags) register(command *cobra.Command) {
	command.Flags().StringVar(&flags.project, "project", "", "project name")
	command.Flags().StringVar(&flags.sequence, "sequence", "", "sequence name, for sequence and shot versions")
	command.Flags().StringVar(&flags.shot, "shot", "", "shot name, for shot versions")
	_ = command.MarkFlagRequired("project")
}

func (flags *parentFlags) resolve(ctx *Context) (Parent, error) {
	if flags.shot != "" && flags.sequence == "" {
		return Parent{}, fmt.Errorf("--shot needs --sequence")
	}

	return ctx.ResolveParent(flags.project, flags.sequence, flags.shot)
}

func (ctx *Context) newVersionCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "version",
		Short: "Manage project, sequence and shot versions",
	}

	var createParent parentFlags
	var input NewVersion

	create := &cobra.Command{
		Use:   "create",
		Short: "Create the next version as the current worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.Session == nil || ctx.Session.Worker == nil {
				return ErrLoginRequired
			}

			parent, err := createParent.resolve(ctx)

			if err != nil {
				return err
			}

			input.WorkerID = ctx.Session.Worker.ID
			version, err := ctx.CreateVersion(parent, input)

			if err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Created %s for %s", FormatVersionFolder(version.VersionNumber), parent)
			return nil
		},
	}

	createParent.register(create)
	create.Flags().UintVar(&input.VersionNumber, "number", 0, "version number (defaults to the next one)")
	create.Flags().StringVar(&input.FilePath, "file", "", "work file path")
	create.Flags().StringVar(&input.PreviewPath, "preview", "", "preview path (defaults to preview_output)")
	create.Flags().StringVar(&input.RenderPath, "render", "", "render path (defaults to render_output)")
	create.Flags().StringVar(&input.Comment, "comment", "", "comment")

	var listParent parentFlags

	list := &cobra.Command{
		Use:   "list",
		Short: "List versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := listParent.resolve(ctx)

			if err != nil {
				return err
			}

			versions, err := ctx.ListVersions(parent)

			if err != nil {
				return err
			}

			latestColor := color.New(color.FgHiGreen)

			for _, version := range versions {
				worker := ""

				if version.Worker != nil {
					worker = version.Worker.Name
				}

				line := fmt.Sprintf("%5d  %s  %-10s %-12s %-16s %s", version.ID, FormatVersionFolder(version.VersionNumber),
					worker, version.Status, version.CreatedAt.Format(timeFormat), version.Comment)

				if version.IsLatest {
					latestColor.Println(line + " (latest)")
				} else {
					fmt.Println(line)
				}
			}

			return nil
		},
	}

	listParent.register(list)

	var nextParent parentFlags

	next := &cobra.Command{
		Use:   "next",
		Short: "Print the next version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := nextParent.resolve(ctx)

			if err != nil {
				return err
			}

			number, err := ctx.NextVersionNumber(parent)

			if err != nil {
				return err
			}

			fmt.Println(FormatVersionFolder(number))
			return nil
		},
	}

	nextParent.register(next)

	command.AddCommand(create, list, next, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a version by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)

			if err != nil {
				return fmt.Errorf("invalid version id %q", args[0])
			}

			return ctx.DeleteVersion(uint(id))
		},
	}, &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a version status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)

			if err != nil {
				return fmt.Errorf("invalid version id %q", args[0])
			}

			return ctx.SetVersionStatus(uint(id), args[1])
		},
	})

	return command
}

func (ctx *Context) newWorkerCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "worker",
		Short: "Manage workers",
	}

	var password, department, role string

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a worker (admin only, the first worker becomes admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptPassword()

				if err != nil {
					return err
				}
			}

			worker, err := ctx.CreateWorker(args[0], password, department, role)

			if err != nil {
				return err
			}

			utils.ConsoleAndLogPrintf("Created %s worker \"%s\"", worker.Role, worker.Name)
			return nil
		},
	}

	add.Flags().StringVar(&password, "new-password", "", "password for the new worker")
	add.Flags().StringVar(&department, "department", "", "department")
	add.Flags().StringVar(&role, "role", models.RoleUser, "user or admin")

	command.AddCommand(add, &cobra.Command{
		Use:   "list",
		Short: "List workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := ctx.ListWorkers()

			if err != nil {
				return err
			}

			for _, worker := range workers {
				fmt.Printf("%-20s %-6s %s\n", worker.Name, worker.Role, worker.Department)
			}

			return nil
		},
	})

	return command
}
