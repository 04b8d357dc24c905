package service

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"quill/app/models"
	"quill/config"
	"quill/logging"
)

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// backupDir is where db backup writes its files.
var backupDir = "data/backups"

// HandleCommand runs a CLI command and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		PrintHelp()
		return 1
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "seed-admin":
		return runSeedAdmin(args[1:])
	case "db":
		return runDB(args[1:])
	case "help":
		PrintHelp()
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", args[0])
		PrintHelp()
		return 1
	}
}

// PrintHelp prints usage for every command.
func PrintHelp() {
	helpText := `Usage: quill <command> [options]

Commands:
  help                                Display this help message
  version                             Show version information
  serve [-env file]                   Run the blog API
  seed-admin [-env file] [options]    Create the admin account if it is missing
      -email, -password, -name, -first-name, -country
  db init [-env file]                 Initialize a new empty database
  db clean [-env file]                Remove the database
  db backup [-env file]               Create a backup of the database
  db restore [-env file] <file>       Restore the database from a backup
`
	fmt.Fprintln(stdout, helpText)
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stdout)
	envFile := fs.String("env", ".env", "environment file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stdout, "Configuration error: %v\n", err)
		return 1
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunAppServer(ctx, cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		return 1
	}
	log.Info(context.Background(), "server stopped")
	return 0
}

func runSeedAdmin(args []string) int {
	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	fs.SetOutput(stdout)
	envFile := fs.String("env", ".env", "environment file")
	email := fs.String("email", "admin@gmail.com", "admin email")
	password := fs.String("password", "admin123", "admin password")
	name := fs.String("name", "Default", "admin name")
	firstName := fs.String("first-name", "Admin", "admin first name")
	country := fs.String("country", "Global", "admin country")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stdout, "Configuration error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, newLogger(cfg))
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open store: %v\n", err)
		return 1
	}
	defer app.Close()

	admin, err := app.Admins.SeedAdmin(ctx, models.SignupRequest{
		Name:      *name,
		FirstName: *firstName,
		Email:     *email,
		Country:   *country,
		Password:  *password,
	})
	if err != nil {
		fmt.Fprintf(stdout, "Failed to seed admin: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Admin %s ready (user %s)\n", *email, admin.UserID)
	return 0
}

func runDB(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(stdout, "Error: db requires a subcommand (init, clean, backup, restore)")
		return 1
	}
	sub := args[0]

	fs := flag.NewFlagSet("db "+sub, flag.ContinueOnError)
	fs.SetOutput(stdout)
	envFile := fs.String("env", ".env", "environment file")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	storeCfg, err := config.LoadStore(*envFile)
	if err != nil {
		fmt.Fprintf(stdout, "Configuration error: %v\n", err)
		return 1
	}
	if storeCfg.Driver != config.DriverBadger {
		fmt.Fprintf(stdout, "Error: db commands need STORE_DRIVER=badger (got %s)\n", storeCfg.Driver)
		return 1
	}
	dbPath := storeCfg.BadgerPath
	log := logging.New(stderr, "text", "warn")

	switch sub {
	case "init":
		return initDb(dbPath, log)
	case "clean":
		return clean(dbPath)
	case "backup":
		return backup(dbPath, backupDir, log)
	case "restore":
		if fs.NArg() < 1 {
			fmt.Fprintln(stdout, "Error: backup file path required for restore")
			return 1
		}
		return restore(dbPath, fs.Arg(0), log)
	default:
		fmt.Fprintf(stdout, "Unknown db command: %s\n\n", sub)
		PrintHelp()
		return 1
	}
}

// confirm asks a yes/no question on stdin. Anything but y or Y is no.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	response, _ := bufio.NewReader(stdin).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

// clean removes the database.
func clean(dbPath string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(stdout, "Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(stdout, "Operation cancelled")
		return 0
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Fprintf(stdout, "Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(dbPath string, log logging.Logger) int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Fprintln(stdout, "Database already exists. Use 'db clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Fprintf(stdout, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := openBadger(dbPath, log)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Fprintln(stdout, "Database initialized successfully")
	return 0
}

// backup writes a full backup of the database into dir.
func backup(dbPath, dir string, log logging.Logger) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(stdout, "No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(stdout, "Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := openBadger(dbPath, log)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Fprintf(stdout, "Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of backupFile.
func restore(dbPath, backupFile string, log logging.Logger) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Fprintf(stdout, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stdout, "Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(stdout, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Fprintln(stdout, "Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Fprintf(stdout, "Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Fprintf(stdout, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := openBadger(dbPath, log)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := loadBackup(db, f); err != nil {
		fmt.Fprintf(stdout, "Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Database restored successfully")
	return 0
}

// loadBackup converts a panic inside badger's loader into an error; a
// corrupt backup can trigger one.
func loadBackup(db interface{ Load(io.Reader, int) error }, r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.New(fmt.Sprint("panic occurred during restore: ", p))
		}
	}()
	return db.Load(r, 4)
}
