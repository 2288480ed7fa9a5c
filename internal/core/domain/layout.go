package domain

import "path/filepath"

const (
	// DevDirName is the per-project directory holding dev server state.
	DevDirName = ".nativedev"

	// HistoryFileName is the name of the build history database.
	HistoryFileName = "history.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "nativedev.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DevPath returns the dev server state directory of a project.
func DevPath(root string) string {
	return filepath.Join(root, DevDirName)
}

// HistoryPath returns the build history database path of a project.
// It joins root, .nativedev and history.db.
func HistoryPath(root string) string {
	return filepath.Join(root, DevDirName, HistoryFileName)
}

// DebugLogPath returns the debug log path of a project.
// It joins root, .nativedev and debug.log.
func DebugLogPath(root string) string {
	return filepath.Join(root, DevDirName, DebugLogFile)
}
