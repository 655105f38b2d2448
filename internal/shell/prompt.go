package shell

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/reminders/internal/todo"
)

type inputLine struct {
	text string
	err  error
}

// startReader reads input lines on a goroutine so prompts can give up on
// ctx while a read is blocked. It stops after the first read error or once
// ctx is done.
func (s *Shell) startReader(ctx context.Context) {
	if s.lines != nil {
		return
	}
	lines := make(chan inputLine)
	s.lines = lines
	go func() {
		for {
			text, err := s.in.ReadString('\n')
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
}

// prompt writes text and reads one line. A final line without a newline is
// returned as is; io.EOF is only returned when nothing was read.
func (s *Shell) prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.startReader(ctx)
	s.printf("%s", text)

	var in inputLine
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		in = l
	}
	if in.err != nil {
		// The reader has stopped; later prompts see EOF.
		s.lines = closedLines
		if !errors.Is(in.err, io.EOF) || in.text == "" {
			return "", in.err
		}
	}
	return strings.TrimRight(in.text, "\r\n"), nil
}

// closedLines stands in for the line channel once the reader has stopped.
var closedLines = func() chan inputLine {
	c := make(chan inputLine)
	close(c)
	return c
}()

func (s *Shell) askYesNo(ctx context.Context, text string) (bool, error) {
	for {
		line, err := s.prompt(ctx, text)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		s.printf("Please answer y or n.\n")
	}
}

// askInt re-prompts until the answer is a number in [lo, hi]. When def is
// non-nil an empty answer returns *def.
func (s *Shell) askInt(ctx context.Context, text string, lo, hi int, def *int) (int, error) {
	for {
		line, err := s.prompt(ctx, text)
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" && def != nil {
			return *def, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		s.printf("Please enter a number from %d to %d.\n", lo, hi)
	}
}

func (s *Shell) askMonth(ctx context.Context) (time.Month, error) {
	for {
		line, err := s.prompt(ctx, "Month (name or 1-12): ")
		if err != nil {
			return 0, err
		}
		m, err := todo.ParseMonth(line)
		if err == nil {
			return m, nil
		}
		s.printf("%v\n", err)
	}
}

func (s *Shell) askMeridiem(ctx context.Context) (string, error) {
	for {
		line, err := s.prompt(ctx, "AM or PM? ")
		if err != nil {
			return "", err
		}
		if todo.IsMeridiem(line) {
			return line, nil
		}
		s.printf("Please answer AM or PM.\n")
	}
}

// askDue collects a due date field by field. A combination that is not a
// real date (such as February 30) restarts the questions.
func (s *Shell) askDue(ctx context.Context) (time.Time, error) {
	for {
		month, err := s.askMonth(ctx)
		if err != nil {
			return time.Time{}, err
		}
		day, err := s.askInt(ctx, "Day (1-31): ", 1, 31, nil)
		if err != nil {
			return time.Time{}, err
		}
		thisYear := s.now().Year()
		year, err := s.askInt(ctx, "Year (blank for "+strconv.Itoa(thisYear)+"): ", 1, 9999, &thisYear)
		if err != nil {
			return time.Time{}, err
		}

		var hour int
		if s.hourFormat == 24 {
			hour, err = s.askInt(ctx, "Hour (0-23): ", 0, 23, nil)
		} else {
			hour, err = s.askInt(ctx, "Hour (1-12): ", 1, 12, nil)
		}
		if err != nil {
			return time.Time{}, err
		}
		minute, err := s.askInt(ctx, "Minute (0-59): ", 0, 59, nil)
		if err != nil {
			return time.Time{}, err
		}
		if s.hourFormat != 24 {
			meridiem, err := s.askMeridiem(ctx)
			if err != nil {
				return time.Time{}, err
			}
			if hour, err = todo.To24Hour(hour, meridiem); err != nil {
				s.printf("%v\n", err)
				continue
			}
		}

		due, err := todo.DueDate(year, month, day, hour, minute)
		if err != nil {
			s.printf("%v\n", err)
			continue
		}
		return due, nil
	}
}
