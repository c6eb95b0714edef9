package main

// Flags holds the effective options for a command after the configuration
// file and the command line have been merged.
type Flags struct {
	File       string `short:"f" long:"file" description:"archive file name to download instead of <package>.zip"`
	Only       string `long:"only" description:"extract only entries matching the given glob"`
	Base       string `long:"base" description:"base directory for downloaded archives and installed packages"`
	Host       string `long:"host" description:"registry host to download packages from"`
	Quiet      bool   `short:"q" long:"quiet" description:"only print essential output"`
	DLOnly     bool   `long:"download-only" description:"stop after downloading the archive (no extraction)"`
	DisableSSL bool   `long:"disable-ssl" description:"skip TLS certificate verification when downloading"`
	Version    bool   `short:"v" long:"version" description:"show version information"`
	Help       bool   `short:"h" long:"help" description:"show this help message"`
}

// CliFlags mirrors Flags with pointer fields so that options the user did
// not pass on the command line can be told apart from zero values when
// merging with the configuration file.
type CliFlags struct {
	File       *string `short:"f" long:"file" description:"archive file name to download instead of <package>.zip"`
	Only       *string `long:"only" description:"extract only entries matching the given glob"`
	Base       *string `long:"base" description:"base directory for downloaded archives and installed packages"`
	Host       *string `long:"host" description:"registry host to download packages from"`
	Quiet      *bool   `short:"q" long:"quiet" description:"only print essential output"`
	DLOnly     *bool   `long:"download-only" description:"stop after downloading the archive (no extraction)"`
	DisableSSL *bool   `long:"disable-ssl" description:"skip TLS certificate verification when downloading"`
	Version    *bool   `short:"v" long:"version" description:"show version information"`
	Help       *bool   `short:"h" long:"help" description:"show this help message"`
}

var opts Flags
