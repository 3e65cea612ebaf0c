package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"echomux/internal/episode"
	"echomux/internal/media"
)

// Edits are textual changes applied to a filename before metadata is
// extracted. Find/Replace works on the full name, Prefix and Suffix on the
// stem.
type Edits struct {
	Find    string
	Replace string
	Prefix  string
	Suffix  string
}

// Apply returns name with the edits applied.
func (e Edits) Apply(name string) string {
	if e.Find != "" {
		name = strings.ReplaceAll(name, e.Find, e.Replace)
	}
	if e.Prefix == "" && e.Suffix == "" {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return e.Prefix + stem + e.Suffix + ext
}

// Options configures a rename plan.
type Options struct {
	Show     string
	Template string
	Edits    Edits
	// Stat checks for existing targets; defaults to os.Stat.
	Stat func(string) (fs.FileInfo, error)
}

// Validate reports option combinations that can never produce usable names.
func (o Options) Validate() error {
	template := strings.TrimSpace(o.Template)
	if template == "" {
		return errors.New("rename template is empty")
	}
	if UsesShow(template) && strings.TrimSpace(o.Show) == "" {
		return errors.New("template references the show name but no show was given")
	}
	return nil
}

// Row is one line of a rename preview.
type Row struct {
	Source     string       `json:"source"`
	Original   string       `json:"original"`
	Edited     string       `json:"edited,omitempty"`
	Info       episode.Info `json:"info"`
	Target     string       `json:"target"`
	TargetPath string       `json:"target_path"`
	Undetected bool         `json:"undetected,omitempty"`
	Unchanged  bool         `json:"unchanged,omitempty"`
	Collision  bool         `json:"collision,omitempty"`
	// Exists is set when the collision is only with a file already on disk;
	// such rows may be applied with overwrite enabled.
	Exists bool   `json:"exists,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Preview is the computed rename plan for a batch, one row per input file in
// input order.
type Preview struct {
	Template string `json:"template"`
	Show     string `json:"show"`
	Rows     []Row  `json:"rows"`
}

// Counts summarises a preview.
type Counts struct {
	Total      int `json:"total"`
	Renamable  int `json:"renamable"`
	Undetected int `json:"undetected"`
	Unchanged  int `json:"unchanged"`
	Collisions int `json:"collisions"`
}

// Counts tallies the row flags.
func (p Preview) Counts() Counts {
	c := Counts{Total: len(p.Rows)}
	for _, row := range p.Rows {
		switch {
		case row.Unchanged:
			c.Unchanged++
		case row.Undetected:
			c.Undetected++
		case row.Collision:
			c.Collisions++
		default:
			c.Renamable++
		}
	}
	return c
}

// Plan renders the target name of every file and flags rows that would be
// skipped or are unsafe to apply.
func Plan(files []media.File, opts Options) (Preview, error) {
	if err := opts.Validate(); err != nil {
		return Preview{}, err
	}
	stat := opts.Stat
	if stat == nil {
		stat = os.Stat
	}

	preview := Preview{Template: opts.Template, Show: opts.Show, Rows: make([]Row, 0, len(files))}
	for _, file := range files {
		original := filepath.Base(file.Path)
		edited := opts.Edits.Apply(original)
		info := episode.ExtractFile(edited)
		target := Render(opts.Template, opts.Show, info, info.Extension)

		row := Row{
			Source:     file.Path,
			Original:   original,
			Info:       info,
			Target:     target,
			TargetPath: filepath.Join(filepath.Dir(file.Path), target),
			Undetected: !info.Detected(),
		}
		if edited != original {
			row.Edited = edited
		}
		switch {
		case target == original:
			row.Unchanged = true
		case row.Undetected:
			row.Reason = "could not parse season/episode"
		case strings.TrimSpace(target) == "" || target == "." || target == "..":
			row.Collision = true
			row.Reason = "template rendered an empty name"
		case strings.ContainsRune(target, filepath.Separator):
			row.Collision = true
			row.Reason = "rendered name contains a path separator"
		}
		preview.Rows = append(preview.Rows, row)
	}

	markCollisions(preview.Rows, stat)
	return preview, nil
}

func markCollisions(rows []Row, stat func(string) (fs.FileInfo, error)) {
	byTarget := make(map[string][]int)
	for i, row := range rows {
		if row.Unchanged || row.Collision {
			continue
		}
		byTarget[row.TargetPath] = append(byTarget[row.TargetPath], i)
	}
	for _, idx := range byTarget {
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx {
			rows[i].Collision = true
			rows[i].Reason = joinReason(rows[i].Reason, fmt.Sprintf("%d files render to %s", len(idx), rows[i].Target))
		}
	}

	for i := range rows {
		row := &rows[i]
		if row.Unchanged || row.Collision {
			continue
		}
		existing, err := stat(row.TargetPath)
		if err != nil {
			continue
		}
		if source, err := stat(row.Source); err == nil && os.SameFile(source, existing) {
			continue
		}
		row.Collision = true
		row.Exists = true
		row.Reason = joinReason(row.Reason, "target already exists")
	}
}

func joinReason(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + "; " + add
}
