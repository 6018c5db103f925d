package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/clippings/internal/ankiconnect"
	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/clippings"
	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/database"
	auditrepo "github.com/mrlokans/clippings/internal/database/audit"
	"github.com/mrlokans/clippings/internal/exporters"
)

// ExportCommand parses a Kindle My Clippings.txt file and sends the notes
// either to stdout as CSV or to Anki through AnkiConnect.
type ExportCommand struct {
	ClippingsPath string
	ConfigPath    string
	Connect       bool
	DatabasePath  string
	Verbose       bool

	// Config supplies the AnkiConnect settings. Loaded from the environment
	// when nil.
	Config *config.Config

	Stdout io.Writer
	Stderr io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.ConfigPath, "config", "", "Path to a TOML, YAML or JSON file overriding the marker prefixes")
	fs.BoolVar(&cmd.Connect, "connect", false, "Send notes to Anki through AnkiConnect instead of printing CSV")
	fs.BoolVar(&cmd.Connect, "c", false, "Shorthand for -connect")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Record the run and the exported notes in this database (disabled when empty)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options] <My Clippings.txt>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert Kindle clippings into notes. By default notes are written to\n")
		fmt.Fprintf(os.Stderr, "stdout as CSV (title,body). With -connect they are added to Anki.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Print notes as CSV:\n")
		fmt.Fprintf(os.Stderr, "  %s export \"/Volumes/Kindle/documents/My Clippings.txt\" > notes.csv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Create Anki cards, with English Kindle markers:\n")
		fmt.Fprintf(os.Stderr, "  %s export -connect -config english.toml \"My Clippings.txt\"\n", os.Args[0])
	}

	// Flags may follow the clippings path.
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	switch len(positional) {
	case 0:
		return fmt.Errorf("clippings file not provided")
	case 1:
		cmd.ClippingsPath = positional[0]
	default:
		return fmt.Errorf("expected a single clippings file, got %d", len(positional))
	}

	return nil
}

func (cmd *ExportCommand) Run(ctx context.Context) error {
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if cmd.Config == nil {
		cmd.Config = config.NewConfig()
	}

	markers, err := config.LoadMarkers(cmd.ConfigPath)
	if err != nil {
		return err
	}

	var db *database.Database
	var auditService *audit.Service
	if cmd.DatabasePath != "" {
		absDBPath, err := filepath.Abs(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		db, err = database.NewDatabase(absDBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		auditService = audit.NewService(auditrepo.NewRepository(db.DB))
		defer auditService.Wait()
	}

	parser := clippings.NewParser(markers)
	result, err := parser.ParseFile(cmd.ClippingsPath)
	if auditService != nil {
		if err != nil {
			auditService.LogParse(cmd.ClippingsPath, 0, 0, 0, err)
		} else {
			auditService.LogParse(cmd.ClippingsPath, result.Blocks, result.Skipped, len(result.Notes), nil)
		}
	}
	if err != nil {
		return err
	}

	if cmd.Verbose {
		fmt.Fprintf(cmd.Stderr, "Found %d notes in %d entries of %s\n", len(result.Notes), result.Blocks, cmd.ClippingsPath)
		if result.Skipped > 0 {
			fmt.Fprintf(cmd.Stderr, "Skipped %d entries without title or text\n", result.Skipped)
		}
	}

	var exporter exporters.NoteExporter
	if cmd.Connect {
		client := ankiconnect.NewClient(cmd.Config.AnkiConnect)
		exporter = exporters.NewAnkiConnectExporter(client)
	} else {
		exporter = exporters.NewCSVExporter(cmd.Stdout)
	}
	if db != nil {
		exporter = exporters.NewRecordingExporter(exporter, db, cmd.ClippingsPath)
	}

	exportResult, err := exporter.Export(ctx, result.Notes)
	if auditService != nil {
		auditService.LogExport(exportResult.Sink, cmd.ClippingsPath, exportResult.NotesProcessed, exportResult.NotesFailed, err)
	}
	if err != nil {
		return err
	}

	if cmd.Connect {
		fmt.Fprintf(cmd.Stderr, "Added %d notes to deck %q\n", exportResult.NotesProcessed, cmd.Config.AnkiConnect.DeckName)
	} else if cmd.Verbose {
		fmt.Fprintf(cmd.Stderr, "Wrote %d CSV records\n", exportResult.NotesProcessed)
	}

	return nil
}
