package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/darasa/core/request"
	"github.com/trezcool/darasa/core/schedule"
)

var errHelp = errors.New("help provided")

type (
	// seedRepository is the write surface of the schedule store the seed
	// command needs.
	seedRepository interface {
		ReplaceClassSchedule(ctx context.Context, classID int, sessions []schedule.RawSession) error
		UpsertStudentOverride(ctx context.Context, ovr schedule.StudentOverride) error
		ReplaceClassReport(ctx context.Context, classID, studentID int, report schedule.ClassReport) error
	}

	requestService interface {
		ExpireOverdue(ctx context.Context) (int, error)
		SendDeadlineReminders(ctx context.Context) (int, error)
	}

	commandLine struct {
		db        *sql.DB
		schedRepo seedRepository
		reqSvc    requestService
	}
)

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (up, down, status, ...)")
	fmt.Println("  seeddemo               - load the demo schedule, overrides and report data")
	fmt.Println("  expire                 - expire pending requests whose deadline has passed")
	fmt.Println("  remind                 - send deadline reminder emails for pending requests")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	switch args[1] {
	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if migrateCmd.NArg() == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(migrateCmd.Args())
	case "seeddemo":
		return cli.seedDemo(context.Background())
	case "expire":
		expired, err := cli.reqSvc.ExpireOverdue(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d request(s) expired\n", expired)
		return nil
	case "remind":
		sent, err := cli.reqSvc.SendDeadlineReminders(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d reminder(s) sent\n", sent)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

var _ requestService = (*request.Service)(nil)
