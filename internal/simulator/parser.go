package simulator

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/chrisdamba/deliverysim/internal/models"
)

// ParseCommands reads a command stream, one command per line:
//
//	day hh:mm NORMAL id duration
//	day hh:mm EXPRESS id duration
//	day hh:mm APPOINTMENT id duration target_day target_hh:mm
//	day hh:mm CANCEL id
//	day hh:mm STATUS id
//
// Blank lines are ignored. Malformed lines are logged and skipped; the
// scheduler itself only ever sees well-formed commands.
func ParseCommands(r io.Reader) ([]models.Command, error) {
	var commands []models.Command

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, err := ParseCommandLine(line)
		if err != nil {
			log.Printf("Skipping line %d: %v", lineNo, err)
			continue
		}
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading command stream: %w", err)
	}

	return commands, nil
}

// ParseCommandLine parses a single command line.
func ParseCommandLine(line string) (models.Command, error) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return models.Command{}, fmt.Errorf("too few fields in %q", line)
	}

	at, err := models.ParseSimTime(parts[0], parts[1])
	if err != nil {
		return models.Command{}, err
	}

	keyword := parts[2]
	cmd := models.Command{Time: at, RequestID: parts[3]}

	switch keyword {
	case "NORMAL", "EXPRESS":
		if len(parts) < 5 {
			return models.Command{}, fmt.Errorf("%s needs a duration in %q", keyword, line)
		}
		duration, err := strconv.Atoi(parts[4])
		if err != nil {
			return models.Command{}, fmt.Errorf("invalid duration %q: %w", parts[4], err)
		}
		cmd.Kind = models.CommandSubmitNormal
		if keyword == "EXPRESS" {
			cmd.Kind = models.CommandSubmitExpress
		}
		cmd.Duration = duration

	case "APPOINTMENT":
		if len(parts) < 7 {
			return models.Command{}, fmt.Errorf("APPOINTMENT needs duration and target time in %q", line)
		}
		duration, err := strconv.Atoi(parts[4])
		if err != nil {
			return models.Command{}, fmt.Errorf("invalid duration %q: %w", parts[4], err)
		}
		target, err := models.ParseSimTime(parts[5], parts[6])
		if err != nil {
			return models.Command{}, err
		}
		cmd.Kind = models.CommandSubmitAppointment
		cmd.Duration = duration
		cmd.Target = &target

	case "CANCEL":
		cmd.Kind = models.CommandCancel

	case "STATUS":
		cmd.Kind = models.CommandStatus

	default:
		return models.Command{}, fmt.Errorf("unknown command %q in %q", keyword, line)
	}

	return cmd, nil
}

// FormatCommandLine renders a command back into the input grammar. The
// workload generator uses it to write files ParseCommands accepts.
func FormatCommandLine(cmd models.Command) string {
	switch cmd.Kind {
	case models.CommandSubmitNormal, models.CommandSubmitExpress:
		return fmt.Sprintf("%s %s %s %d", cmd.Time, cmd.Kind, cmd.RequestID, cmd.Duration)
	case models.CommandSubmitAppointment:
		return fmt.Sprintf("%s %s %s %d %s", cmd.Time, cmd.Kind, cmd.RequestID, cmd.Duration, cmd.Target)
	default:
		return fmt.Sprintf("%s %s %s", cmd.Time, cmd.Kind, cmd.RequestID)
	}
}
