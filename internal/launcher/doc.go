// Package launcher turns the process command line into a running openshot
// application.
//
// # Sequence
//
// Launcher.Run performs a single pass with no retries:
//
//  1. Parse the command line (Parse). Usage errors exit with code 2.
//  2. --version prints the version and exits 0.
//  3. Derive the console and file log levels from --debug,
//     --debug-file and --debug-console.
//  4. --list-languages prints the catalog and exits 0.
//  5. Prepend each existing --path directory to the module search path.
//     Missing or malformed entries are reported and skipped.
//  6. --test-models enables list model checks and defaults
//     OPENSHOT_LOGGING_RULES.
//  7. Record the web backend.
//  8. Validate --lang against the catalog; an unknown code exits -1.
//     Steps 3-7 have already run at this point and are not undone.
//  9. Install the telemetry hook.
//  10. Print where modules were loaded from.
//  11. Construct the application. A failure is shown through
//     app.ShowErrors and exits 1.
//  12. Set the application identity; the desktop id only when the
//     toolkit reports the capability.
//  13. Run the event loop and return its exit code.
//
// # Argument Handling
//
// Parse is lenient: tokens that are not openshot flags are handed to the
// application untouched. The first positional argument (or a bare "--")
// ends flag parsing, and everything from there on is passthrough.
package launcher
