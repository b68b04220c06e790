/*
Package cli provides command-line interface utilities for snapwheel.

The cli package includes output formatters and signal handling helpers
used by the snapwheel command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Results that implement the Tabular interface render as aligned columns
in text mode and as rows in CSV mode; everything else falls back to its
default string form (text) or structural encoding (JSON).

Signal Handling:

For cancelling an in-flight backup on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Pass ctx to operations that should stop on shutdown.

A second signal exits immediately without waiting for the external tool
to die.
*/
package cli
