package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"tomgalvin.uk/escposimage/internal/escpos"
	"tomgalvin.uk/escposimage/internal/jobs"
	"tomgalvin.uk/escposimage/internal/printer"
)

// Opens wherever the commands should go: a Bluetooth printer if one was
// named, otherwise the output file or stdout.
func openSink(s *settings) (printer.Sink, error) {
	if s.bluetooth != "" && s.output != "" {
		return nil, errors.New("Only one of --output and --bluetooth can be given")
	}
	if s.bluetooth != "" {
		slog.Info("Scanning for printer...", "deviceName", s.bluetooth)
		conn, err := printer.FromBluetoothName(s.bluetooth)
		if err != nil {
			return nil, fmt.Errorf("Couldn't connect to printer %s:\n%w", s.bluetooth, err)
		}
		return conn, nil
	}
	if s.output != "" {
		f, err := os.Create(s.output)
		if err != nil {
			return nil, fmt.Errorf("Couldn't open output file:\n%w", err)
		}
		return printer.NewStreamSink(f), nil
	}
	return printer.NewUnclosedStreamSink(os.Stdout), nil
}

func writeAndClose(sink printer.Sink, cmds []escpos.Command) error {
	err := printer.WriteCommands(sink, cmds)
	return errors.Join(err, sink.Close())
}

func requireArgs(c *cli.Context, least, most int) error {
	if c.NArg() < least || c.NArg() > most {
		return fmt.Errorf("%s takes %d to %d arguments, see help %s", c.Command.Name, least, most, c.Command.Name)
	}
	return nil
}

func encodeAction(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	_, cmds, err := encodeImage(c.Args().First(), s)
	if err != nil {
		return err
	}

	// nothing is opened until the image has been encoded successfully
	sink, err := openSink(s)
	if err != nil {
		return err
	}
	return writeAndClose(sink, cmds)
}

func openRepository(s *settings) (*jobs.Repository, error) {
	r, err := NewRepository(s.database)
	if err != nil {
		return nil, err
	}
	slog.Debug("Opened print queue", "database", s.database)
	return r, nil
}

func enqueueAction(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	filename := c.Args().First()
	b, cmds, err := encodeImage(filename, s)
	if err != nil {
		return err
	}

	r, err := openRepository(s)
	if err != nil {
		return err
	}
	defer r.Close()

	j := jobs.NewJob(filepath.Base(filename), s.format, s.config, b.Width(), b.Height(), cmds)
	if err := r.Transact(func(tx *sql.Tx) error {
		return r.Create(tx, j)
	}); err != nil {
		return err
	}

	slog.Info("Queued job", "uuid", j.Uuid, "size", len(j.Data))
	fmt.Fprintln(c.App.Writer, j.Uuid)
	return nil
}

func jobsAction(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	r, err := openRepository(s)
	if err != nil {
		return err
	}
	defer r.Close()

	list, err := r.List(c.Bool("pending"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNAME\tFORMAT\tSIZE\tBYTES\tCREATED\tSENT")
	for _, j := range list {
		sent := "-"
		if j.Sent() {
			sent = j.SentAt.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%s\t%s\n",
			j.Uuid, j.Name, j.Format, j.Width, j.Height, j.Size, j.CreatedAt.Format(time.DateTime), sent)
	}
	return w.Flush()
}

func parseJobArg(c *cli.Context) (uuid.UUID, error) {
	u, err := uuid.Parse(c.Args().First())
	if err != nil {
		return uuid.Nil, fmt.Errorf("Invalid job UUID %q:\n%w", c.Args().First(), err)
	}
	return u, nil
}

func sendAction(c *cli.Context) error {
	if err := requireArgs(c, 0, 1); err != nil {
		return err
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	r, err := openRepository(s)
	if err != nil {
		return err
	}
	defer r.Close()

	var j *jobs.Job
	if c.NArg() == 1 {
		u, err := parseJobArg(c)
		if err != nil {
			return err
		}
		if j, err = r.Get(u); err != nil {
			return err
		}
		if j == nil {
			return fmt.Errorf("%w with UUID %s", jobs.ErrNoSuchJob, u)
		}
	} else {
		if j, err = r.NextPending(); err != nil {
			return err
		}
		if j == nil {
			slog.Info("No pending jobs")
			return nil
		}
	}

	sink, err := openSink(s)
	if err != nil {
		return err
	}
	if err := errors.Join(sink.Write(j.Data), sink.Close()); err != nil {
		return fmt.Errorf("Couldn't send job %s:\n%w", j.Uuid, err)
	}

	slog.Info("Sent job", "uuid", j.Uuid, "size", len(j.Data))
	return r.Transact(func(tx *sql.Tx) error {
		return r.MarkSent(tx, j.Uuid, time.Now())
	})
}

func deleteAction(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	u, err := parseJobArg(c)
	if err != nil {
		return err
	}
	r, err := openRepository(s)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Transact(func(tx *sql.Tx) error {
		return r.Delete(tx, u)
	})
}
