package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tabs/pkg/baseline"
	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/version"
)

func TestNewReport(t *testing.T) {
	results := []baseline.Result{
		{Name: "a", Kind: baseline.KindChanged, Old: "1.0", New: "2.0", Direction: version.Upgrade},
		{Name: "b", Kind: baseline.KindNew, New: "0.1"},
		{Name: "c", Kind: baseline.KindFailed, Err: errors.New(errors.ErrCodeNoSelector, "no selector")},
	}
	rep := NewReport("run-1", results)

	if rep.RunID != "run-1" || len(rep.Packages) != 3 {
		t.Fatalf("NewReport = %+v", rep)
	}
	if p := rep.Packages[0]; p.Status != "changed" || p.Direction != "upgrade" || p.Old != "1.0" {
		t.Errorf("changed entry = %+v", p)
	}
	if p := rep.Packages[1]; p.Status != "new" || p.Direction != "" {
		t.Errorf("new entry = %+v", p)
	}
	if p := rep.Packages[2]; p.Status != "failed" || p.Code != "NO_SELECTOR" || p.Error == "" {
		t.Errorf("failed entry = %+v", p)
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReport("r", []baseline.Result{{Name: "a", Kind: baseline.KindUnchanged, Old: "1", New: "1"}})
	if err := WriteReport(&buf, rep); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	pkgs := decoded["packages"].([]any)
	first := pkgs[0].(map[string]any)
	if first["status"] != "unchanged" {
		t.Errorf("status = %v", first["status"])
	}
	if _, ok := first["error"]; ok {
		t.Error("empty error should be omitted")
	}
}

func TestExportReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportReport(path, NewReport("r", nil)); err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}

	err := ExportReport(filepath.Join(t.TempDir(), "missing", "report.json"), NewReport("r", nil))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}
