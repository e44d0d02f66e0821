package main

import (
	"path/filepath"
	"pipe-tools/utils"
)

// SetProjectRoot checks the folder exists and stores its absolute path as project_root.
func (ctx *Context) SetProjectRoot(rootPath string) error {
	if err := RequireAdmin(ctx.Session); err != nil {
		return err
	}

	resolvedPath := ResolveMappedDrive(rootPath)

	if !IsDir(resolvedPath) {
		return ErrCouldNotResolvePath
	}

	absoluteRootPath, err := filepath.Abs(resolvedPath)

	if err != nil {
		return ErrCouldNotResolvePath
	}

	current, err := ctx.GetSetting(SettingProjectRoot)

	if err != nil {
		return err
	}

	// Has the root already been set?
	if current == absoluteRootPath {
		utils.ConsoleAndLogPrintf("Project root is already \"%s\"", absoluteRootPath)
		return nil
	}

	utils.ConsoleAndLogPrintf("Setting project root to \"%s\"", absoluteRootPath)

	return ctx.SetSetting(SettingProjectRoot, absoluteRootPath)
}
