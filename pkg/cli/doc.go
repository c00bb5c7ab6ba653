/*
Package cli holds helpers shared by the sieve subcommands.

Errors:

ConfigError and CommandError describe failures in loading configuration and
running a command. ExitError carries a process exit code from a command back
to main without the command calling os.Exit itself:

	if rep.HasErrors() && failOnError {
		return cli.NewExitError(1, "%d classification error(s)", len(rep.Diagnostics))
	}

main turns the error into an exit code with ExitCode.

Signal Handling:

Long-running commands such as watch stop on SIGINT or SIGTERM:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
