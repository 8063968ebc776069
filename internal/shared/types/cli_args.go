package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile   string
	WorkbookFile string
	ReportName   string
	ReportType   []string
	Dir          string
	DatabasePath string
	ListenAddr   string
}
