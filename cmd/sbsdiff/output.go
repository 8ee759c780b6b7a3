package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sbsdiff/internal/diffview"
	"sbsdiff/internal/input"
	"sbsdiff/internal/patch"
	"sbsdiff/internal/render"
)

const (
	formatSplit   = "split"
	formatUnified = "unified"
	formatJSON    = "json"
	formatStat    = "stat"
)

type jsonReport struct {
	LeftName  string `json:"left_name"`
	RightName string `json:"right_name"`
	diffview.Result
}

func writeOutput(w io.Writer, format string, pair input.Pair, res diffview.Result, s settings, path string) error {
	switch format {
	case formatSplit:
		opts := render.Options{
			Width:    s.widthFor(w),
			Color:    s.colorFor(w),
			Path:     path,
			TabWidth: s.tabWidth,
			Cursor:   -1,
		}
		for _, line := range render.Split(res, res.Lines(), opts) {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
		return nil

	case formatUnified:
		out, err := patch.Unified(pair.LeftName, pair.RightName, res.Rows, s.patchContext)
		if err != nil {
			return fmt.Errorf("unified diff: %w", err)
		}
		_, err = w.Write(out)
		return err

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{LeftName: pair.LeftName, RightName: pair.RightName, Result: res})

	case formatStat:
		_, err := fmt.Fprintln(w, render.FormatStats(res.Stats))
		return err
	}
	return fmt.Errorf("unknown --format %q (want split, unified, json or stat)", format)
}
