// Package logger provides leveled logging for rosecrypt CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors; informative
// output goes to stdout, warnings and errors to stderr so decoded payloads
// piped from stdout stay clean.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown (critical warnings)
//	Logger.WarnfUser()       // User-facing warnings, no log prefix
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs and returns the error
//	Logger.Fatalf()          // Always shown, then exits
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Generating %dx%d noise field", width, height)
//
// Commands create a logger in the root PersistentPreRun and share it
// through the cmd package.
package logger
