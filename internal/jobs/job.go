package jobs

import (
	"time"

	"github.com/google/uuid"
	"tomgalvin.uk/escposimage/internal/escpos"
)

// An encoded image waiting to be (or already) sent to a printer
type Job struct {
	Id            int
	Uuid          uuid.UUID
	Name          string
	Format        escpos.Format
	Config        escpos.EncodingConfig
	Width, Height int
	CreatedAt     time.Time
	// nil until the job has been sent
	SentAt *time.Time
	// Length of Data in bytes
	Size int
	// The exact byte stream to send, decompressed. Not loaded when listing jobs.
	Data []byte
}

func (j *Job) Sent() bool {
	return j.SentAt != nil
}

// Builds a job for a set of encoded commands
func NewJob(name string, format escpos.Format, cfg escpos.EncodingConfig, width, height int, cmds []escpos.Command) *Job {
	return &Job{
		Uuid:      uuid.New(),
		Name:      name,
		Format:    format,
		Config:    cfg,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
		Data:      escpos.Serialize(cmds),
	}
}
