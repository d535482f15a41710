package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Convert a drakedrakemayemaye file to Python."`
	Revert  RevertCmd  `cmd:"" help:"Convert a Python file back to drakedrakemayemaye."`
	Check   CheckCmd   `cmd:"" help:"Check bracket keyword balance in a drakedrakemayemaye file."`
	Run     RunCmd     `cmd:"" help:"Convert and run a drakedrakemayemaye file with the host Python."`
	Repl    ReplCmd    `cmd:"" help:"Start an interactive drakedrakemayemaye session."`
	Build   BuildCmd   `cmd:"" help:"Convert every .ddmm file under a path to sibling .py files."`
	Doctor  DoctorCmd  `cmd:"" help:"Doctor utilities for debugging conversions."`
}
