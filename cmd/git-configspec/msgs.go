package main

// Short messages (one-liners)
const (
	MsgRootShort = "Mimic ClearCase config spec checkouts on git working copies"
	MsgRootLong  = `git-configspec reads a ClearCase-style config spec and translates its
element rules into git checkout commands.

Rules are ordered by specificity before execution: the "*" catch-all
runs last and shorter patterns run before longer ones, so file-level
selections override directory-level defaults.

By default nothing is executed; the intended commands are reported.
Use --apply to perform the checkouts or --emit to print the command
lines to stdout.`

	MsgVersionShort   = "Print version information"
	MsgGenconfigShort = "Print the effective configuration as TOML"
	MsgGenconfigLong  = `Print the effective configuration (embedded defaults, user config
file, and environment overrides merged) as TOML. Redirect the output
to create a starting point for a user config file.`

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagApply    = "Apply the config spec by performing checkouts based on the rules"
	MsgFlagEmit     = "Print the git command lines to stdout instead of running them"
	MsgFlagIgnore   = "Do not check whether target directories exist"
	MsgFlagBasedir  = "Base directory rule patterns resolve against"
	MsgDryRunNotice = "Dry run - pass --apply to perform these checkouts"
)
