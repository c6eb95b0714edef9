package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	pb "github.com/schollz/progressbar/v3"
)

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

// IsUrl returns true if s is a valid URL.
func IsUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsLocalFile(s string) bool {
	_, err := os.Stat(s)
	return err == nil
}

// IsDirectory returns true if the file at 'path' is a directory.
func IsDirectory(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func main() {
	var cli CliFlags
	flagparser := flags.NewParser(&cli, flags.PassDoubleDash|flags.PrintErrors)
	flagparser.Usage = "[OPTIONS] COMMAND PACKAGE"
	args, err := flagparser.Parse()
	if err != nil {
		os.Exit(1)
	}

	if cli.Version != nil && *cli.Version {
		fmt.Println("aokege version", Version)
		os.Exit(0)
	}

	if cli.Help != nil && *cli.Help {
		flagparser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if len(args) < 1 {
		fmt.Println("no command given (get, remove, extract)")
		flagparser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if len(args) < 2 {
		fmt.Printf("no package given for `%s`\n", args[0])
		flagparser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	command, pkg := args[0], args[1]
	if !ValidPackageName(pkg) {
		fatal(fmt.Sprintf("invalid package name: %s", pkg))
	}

	config, err := InitializeConfig()
	if err != nil {
		fatal(err)
	}
	if err := SetOptionsFromConfig(config, &opts, cli, pkg); err != nil {
		fatal(err)
	}

	// when --quiet is passed, send non-essential output to io.Discard
	var output io.Writer = os.Stdout
	if opts.Quiet {
		output = io.Discard
	}

	store := &Store{Base: opts.Base}

	switch command {
	case "get":
		err = cmdGet(store, pkg, output)
	case "remove", "rm":
		err = cmdRemove(store, pkg, output)
	case "extract":
		err = cmdExtract(store, pkg, output)
	default:
		fmt.Printf("unknown command: %s\n", command)
		flagparser.WriteHelp(os.Stdout)
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

// cmdGet downloads a package archive into the base directory and extracts
// it into the package's install directory.
func cmdGet(store *Store, pkg string, output io.Writer) error {
	if err := store.EnsureBase(); err != nil {
		return err
	}

	file := ArchiveName(pkg, opts.File)
	url := PackageURL(opts.Host, pkg, file)
	// a host may also be a local directory holding the registry layout
	if !IsUrl(url) && !IsLocalFile(url) {
		return fmt.Errorf("invalid registry host: %s", opts.Host)
	}
	fmt.Fprintf(output, "%s\n", url)

	archivePath := store.ArchivePath(file)
	err := DownloadTo(url, archivePath, func(size int64) *pb.ProgressBar {
		var pbout io.Writer = os.Stderr
		if opts.Quiet {
			pbout = io.Discard
		}
		return pb.NewOptions64(size,
			pb.OptionSetWriter(pbout),
			pb.OptionShowBytes(true),
			pb.OptionSetWidth(10),
			pb.OptionThrottle(65*time.Millisecond),
			pb.OptionShowCount(),
			pb.OptionSpinnerType(14),
			pb.OptionFullWidth(),
			pb.OptionSetDescription("Downloading"),
			pb.OptionOnCompletion(func() {
				fmt.Fprint(pbout, "\n")
			}),
			pb.OptionSetTheme(pb.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	})
	if err != nil {
		return err
	}

	if opts.DLOnly {
		fmt.Fprintf(output, "Downloaded `%s` to `%s`\n", file, archivePath)
		return nil
	}

	return extractPackage(store, pkg, file, output)
}

// cmdExtract re-extracts an already-downloaded archive. A missing archive
// is a hard failure; there is nothing to operate on.
func cmdExtract(store *Store, pkg string, output io.Writer) error {
	file := ArchiveName(pkg, opts.File)
	path := store.ArchivePath(file)
	if !IsLocalFile(path) {
		return fmt.Errorf("no downloaded archive for package %s (expected %s)", pkg, path)
	}
	return extractPackage(store, pkg, file, output)
}

func cmdRemove(store *Store, pkg string, output io.Writer) error {
	found, err := store.Remove(pkg)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(output, "no such package: %s\n", pkg)
		return nil
	}
	fmt.Fprintf(output, "Removed `%s`\n", pkg)
	return nil
}

func extractPackage(store *Store, pkg, file string, output io.Writer) error {
	data, err := os.ReadFile(store.ArchivePath(file))
	if err != nil {
		return err
	}

	var choose Chooser = AllChooser{}
	if opts.Only != "" {
		gc, err := NewGlobChooser(opts.Only)
		if err != nil {
			return err
		}
		choose = gc
	}

	dst := store.InstallDir(pkg)
	if err := ExtractArchive(data, file, dst, choose); err != nil {
		return err
	}
	fmt.Fprintf(output, "Extracted `%s` to `%s`\n", file, dst)
	return nil
}
