package io

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/matzehuels/tabs/pkg/baseline"
	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/version"
)

// Report is the JSON document written by [WriteReport].
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Packages    []ReportPackage `json:"packages"`
}

// ReportPackage is one package line of a [Report].
type ReportPackage struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Old       string `json:"old,omitempty"`
	New       string `json:"new,omitempty"`
	Direction string `json:"direction,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewReport builds a report from classified results.
func NewReport(runID string, results []baseline.Result) Report {
	rep := Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Packages:    make([]ReportPackage, len(results)),
	}
	for i, r := range results {
		p := ReportPackage{Name: r.Name, Status: r.Kind.String(), Old: r.Old, New: r.New}
		if r.Kind == baseline.KindChanged && r.Direction != version.Unknown {
			p.Direction = r.Direction.String()
		}
		if r.Err != nil {
			p.Code = string(errors.GetCode(r.Err))
			p.Error = r.Err.Error()
		}
		rep.Packages[i] = p
	}
	return rep
}

// WriteReport encodes rep as indented JSON.
func WriteReport(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// ExportReport writes rep to the file at path.
func ExportReport(path string, rep Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create report")
	}
	if err := WriteReport(f, rep); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write report")
	}
	return f.Close()
}
