package config

import (
	"archive/zip"
	"fmt"
	"os"
	"sort"
	"time"

	"selgen/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	path  string // file to be read at finalization, empty for data entries
	stamp time.Time
	data  []byte
}

// Report accumulates information necessary to prepare full debug report.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Name returns the location of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	return r.file.Name()
}

// Store schedules the file at path to be put into the final archive under
// the given name. Nil receiver is ignored so callers do not need to check if
// a report was requested.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	r.entries[name] = entry{path: path, stamp: time.Now()}
}

// StoreData schedules a byte slice to be put into the final archive under
// the given name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// Close finalizes debug report.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		// no report has been requested
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

func (r *Report) finalize() error {

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	w := zip.NewWriter(r.file)
	for _, name := range names {
		e := r.entries[name]

		data := e.data
		if len(e.path) > 0 {
			// content is read at finalization so entries like log files are
			// as complete as possible
			var err error
			if data, err = os.ReadFile(e.path); err != nil {
				// still produce the rest of the report
				data = []byte(fmt.Sprintf("unable to read %q: %v", e.path, err))
			}
		}

		fh := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: e.stamp}
		f, err := w.CreateHeader(fh)
		if err != nil {
			return fmt.Errorf("unable to create report entry %q: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("unable to write report entry %q: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize report: %w", err)
	}
	return nil
}
