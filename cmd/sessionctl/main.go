package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/exam-session-api/internal/app"
	"github.com/yourusername/exam-session-api/internal/config"
	"github.com/yourusername/exam-session-api/internal/domain/entity"
	"github.com/yourusername/exam-session-api/internal/handler/helper"
	"github.com/yourusername/exam-session-api/internal/service"
)

// Консольная утилита преподавателя поверх того же хранилища, что и API:
//
//	sessionctl users
//	sessionctl results [name]
//	sessionctl status <name>
//	sessionctl reset <name>
//
// С файловым хранилищем запускать при остановленном API: блокировки в памяти
// процесса не видны другому процессу. С Redis блокировки общие.
func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "operation timeout")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	app.LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	svc, cleanup, err := app.NewTestSessionService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize test session service: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, svc, os.Stdout, flag.Args()); err != nil {
		color.Red("Error: %v", err)
		cleanup()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: sessionctl [-timeout 30s] users | results [name] | status <name> | reset <name>\n")
	flag.PrintDefaults()
}

// run выполняет подкоманду и печатает результат в w
func run(ctx context.Context, svc *service.TestSessionService, w io.Writer, args []string) error {
	switch args[0] {
	case "users":
		snapshot, err := svc.AdminListAll(ctx)
		if err != nil {
			return err
		}
		renderUsers(w, snapshot.Users)
		fmt.Fprintf(w, "Total users: %d, total tests: %d\n", snapshot.TotalUsers, snapshot.TotalTests)
		return nil

	case "results":
		var (
			results []entity.TestResult
			err     error
		)
		if len(args) > 1 {
			results, err = svc.GetResults(ctx, args[1])
		} else {
			results, err = svc.ExportResults(ctx)
		}
		if err != nil {
			return err
		}
		renderResults(w, results)
		return nil

	case "status":
		if len(args) < 2 {
			return fmt.Errorf("status requires a student name")
		}
		eligibility, err := svc.CanTakeTest(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: canRetake=%t hasCompleted=%t\n", args[1], eligibility.CanRetake, eligibility.HasCompleted)
		return nil

	case "reset":
		if len(args) < 2 {
			return fmt.Errorf("reset requires a student name")
		}
		if err := svc.AdminResetUser(ctx, args[1]); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(w, "Student %s reset, previous result removed\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func renderUsers(w io.Writer, users []entity.User) {
	color.New(color.FgYellow).Fprintln(w, "Students")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Can Retake", "Created At"})
	for _, u := range users {
		table.Append([]string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			strconv.FormatBool(u.CanRetake),
			u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	table.Render()
}

func renderResults(w io.Writer, results []entity.TestResult) {
	color.New(color.FgYellow).Fprintln(w, "Test results")
	table := tablewriter.NewWriter(w)
	table.SetHeader(helper.ExportHeaders)
	for _, r := range results {
		table.Append(helper.ResultRow(r))
	}
	table.Render()
}
