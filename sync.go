package main

import (
	"fmt"
	"log"
	"path/filepath"
	"pipe-tools/models"
	"pipe-tools/utils"
	"time"
)

type SyncError struct {
	Path string
	Err  error
}

func (e SyncError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

type SyncReport struct {
	RootPath         string
	ProjectsCreated  int64
	SequencesCreated int64
	ShotsCreated     int64
	VersionsImported int64
	VersionsSkipped  int64
	Warnings         []string
	Errors           []SyncError
	Duration         time.Duration
}

func (report *SyncReport) Succeeded() bool {
	return len(report.Errors) == 0
}

func (report *SyncReport) Summary() string {
	return fmt.Sprintf("Created %s, %s and %s. Imported %s (%s skipped). %s, %s",
		utils.Pluralize("project", report.ProjectsCreated),
		utils.Pluralize("sequence", report.SequencesCreated),
		utils.Pluralize("shot", report.ShotsCreated),
		utils.Pluralize("version", report.VersionsImported),
		utils.Pluralize("version", report.VersionsSkipped),
		utils.Pluralize("warning", int64(len(report.Warnings))),
		utils.Pluralize("error", int64(len(report.Errors))),
	)
}

type synchronizer struct {
	ctx          *Context
	importMode   string
	systemWorker *models.Worker
	report       *SyncReport
}

// Synchronize mirrors <root>/<project>/<sequence>/<shot>/vNNN into the database. Rows are only
// ever added. A failure inside one project, sequence or shot is logged and recorded in the report,
// and the walk carries on with the next sibling. An empty rootPath uses the project_root setting.
func (ctx *Context) Synchronize(rootPath string) (*SyncReport, error) {
	startTime := time.Now()
	absoluteRootPath, err := ctx.resolveProjectRoot(rootPath)

	if err != nil {
		return nil, err
	}

	systemWorker, err := ensureSystemWorker(ctx.DB)

	if err != nil {
		return nil, err
	}

	s := &synchronizer{
		ctx:          ctx,
		importMode:   ctx.Config.VersionImportMode,
		systemWorker: systemWorker,
		report:       &SyncReport{RootPath: absoluteRootPath},
	}

	utils.ConsoleAndLogPrintf("Synchronising \"%s\"", absoluteRootPath)

	entries, err := listSubDirectories(absoluteRootPath, ctx.Config.FolderNamesToIgnore)

	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		projectPath := filepath.Join(absoluteRootPath, entry.Name())

		if _, isVersion := ParseVersionFolder(entry.Name()); isVersion {
			s.warn("Skipping version folder \"%s\" found where a project was expected", projectPath)
			continue
		}

		if err := s.syncProject(projectPath); err != nil {
			s.fail("project", projectPath, err)
		}
	}

	s.report.Duration = time.Since(startTime)
	utils.ConsoleAndLogPrintf("%s in %s", s.report.Summary(), utils.FormatDuration(s.report.Duration))

	return s.report, nil
}

// resolveProjectRoot falls back to the project_root setting and checks the folder exists.
func (ctx *Context) resolveProjectRoot(rootPath string) (string, error) {
	if rootPath == "" {
		configuredRoot, err := ctx.GetSetting(SettingProjectRoot)

		if err != nil {
			return "", err
		}

		if configuredRoot == "" {
			return "", ErrProjectRootNotSet
		}

		rootPath = configuredRoot
	}

	absoluteRootPath, err := filepath.Abs(ResolveMappedDrive(rootPath))

	if err != nil || !IsDir(absoluteRootPath) {
		return "", fmt.Errorf("%w: \"%s\"", ErrCouldNotResolvePath, rootPath)
	}

	return absoluteRootPath, nil
}

func (s *synchronizer) syncProject(projectPath string) error {
	project, created, err := getOrCreateProject(s.ctx.DB, filepath.Base(projectPath), projectPath)

	if err != nil {
		return err
	}

	if created {
		s.report.ProjectsCreated++
	}

	entries, err := listSubDirectories(projectPath, s.ctx.Config.FolderNamesToIgnore)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		childPath := filepath.Join(projectPath, entry.Name())

		if _, isVersion := ParseVersionFolder(entry.Name()); isVersion {
			if _, err := s.importVersionFolder(Parent{Kind: ParentProject, ID: project.ID}, childPath); err != nil {
				s.fail("version", childPath, err)
			}

			continue
		}

		if err := s.syncSequence(project.ID, childPath); err != nil {
			s.fail("sequence", childPath, err)
		}
	}

	return nil
}

func (s *synchronizer) syncSequence(projectID uint, sequencePath string) error {
	sequence, created, err := getOrCreateSequence(s.ctx.DB, projectID, filepath.Base(sequencePath))

	if err != nil {
		return err
	}

	if created {
		s.report.SequencesCreated++
	}

	entries, err := listSubDirectories(sequencePath, s.ctx.Config.FolderNamesToIgnore)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		childPath := filepath.Join(sequencePath, entry.Name())

		if _, isVersion := ParseVersionFolder(entry.Name()); isVersion {
			if _, err := s.importVersionFolder(Parent{Kind: ParentSequence, ID: sequence.ID}, childPath); err != nil {
				s.fail("version", childPath, err)
			}

			continue
		}

		if err := s.syncShot(sequence.ID, childPath); err != nil {
			s.fail("shot", childPath, err)
		}
	}

	return nil
}

// syncShot only looks for version folders; anything else inside a shot is reported and skipped.
func (s *synchronizer) syncShot(sequenceID uint, shotPath string) error {
	shot, created, err := getOrCreateShot(s.ctx.DB, sequenceID, filepath.Base(shotPath))

	if err != nil {
		return err
	}

	if created {
		s.report.ShotsCreated++
	}

	entries, err := listSubDirectories(shotPath, s.ctx.Config.FolderNamesToIgnore)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		childPath := filepath.Join(shotPath, entry.Name())

		if _, err := s.importVersionFolder(Parent{Kind: ParentShot, ID: shot.ID}, childPath); err != nil {
			s.fail("version", childPath, err)
		}
	}

	return nil
}

func (s *synchronizer) warn(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Printf("Warning: %s", message)
	s.report.Warnings = append(s.report.Warnings, message)
}

func (s *synchronizer) fail(kind, path string, err error) {
	log.Printf("Error synchronising %s \"%s\": %v", kind, path, err)
	s.report.Errors = append(s.report.Errors, SyncError{Path: path, Err: err})
}
