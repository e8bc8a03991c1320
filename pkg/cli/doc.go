/*
Package cli provides command-line interface utilities for signoff.

The cli package includes output formatters, progress reporting, exit-code
mapping, and signal handling used by the signoff command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Exit Codes:

Commands map their outcome onto fixed exit codes: 0 when every check
passes, 1 when any check fails, 2 for configuration or usage errors.
ExitCode derives the code from an error:

	os.Exit(cli.ExitCode(err))

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
